// Package dispatchtest provides a recording dispatch.Transport for tests.
package dispatchtest

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Sent is one message sent through the Transport.
type Sent struct {
	ChannelID string
	Content   string
	Embed     *discordgo.MessageEmbed
}

// Transport records everything sent through it. Permissions is returned for every
// permission lookup.
type Transport struct {
	mu          sync.Mutex
	Permissions int64
	Sent        []Sent
	Statuses    []string
}

func (t *Transport) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Sent = append(t.Sent, Sent{ChannelID: channelID, Content: content})
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (t *Transport) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Sent = append(t.Sent, Sent{ChannelID: channelID, Embed: embed})
	return &discordgo.Message{ChannelID: channelID}, nil
}

// UserChannelCreate opens the DM channel "dm-<user id>".
func (t *Transport) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return &discordgo.Channel{ID: "dm-" + recipientID}, nil
}

func (t *Transport) UserChannelPermissions(_, _ string, _ ...discordgo.RequestOption) (int64, error) {
	return t.Permissions, nil
}

func (t *Transport) UpdateGameStatus(_ int, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Statuses = append(t.Statuses, name)
	return nil
}

// Contents returns the text of every plain message sent, in order.
func (t *Transport) Contents() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var contents []string
	for _, s := range t.Sent {
		if s.Embed == nil {
			contents = append(contents, s.Content)
		}
	}
	return contents
}

// Embeds returns every embed sent, in order.
func (t *Transport) Embeds() []*discordgo.MessageEmbed {
	t.mu.Lock()
	defer t.mu.Unlock()
	var embeds []*discordgo.MessageEmbed
	for _, s := range t.Sent {
		if s.Embed != nil {
			embeds = append(embeds, s.Embed)
		}
	}
	return embeds
}
