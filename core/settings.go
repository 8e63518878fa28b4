package core

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/jcelliott/lumber"
	"github.com/joho/godotenv"
)

type DiceConfig struct {
	MaxCount int
	MaxSides int
}

type FighterConfig struct {
	Health      int
	Endurance   int
	SendDelayMs int
}

// Responder maps a set of trigger phrases to a pool of random answers.
type Responder struct {
	Triggers []string
	Answers  []string
}

type jsonData struct {
	Development    bool
	AuthToken      string
	CommandPrefix  string
	Database       string
	OwnerIds       []string
	BotName        string
	HotWords       []string
	Referee        string
	WelcomeMessage string
	Dice           DiceConfig
	Fighter        FighterConfig
	Responders     []Responder
}

// SettingsData exposes the settings shape to tests in other packages.
type SettingsData = jsonData

// envOverrides are applied on top of the settings file.
type envOverrides struct {
	AuthToken     string `env:"DISCORD_TOKEN"`
	CommandPrefix string `env:"COMMAND_PREFIX"`
	Database      string `env:"DATABASE_PATH"`
}

type SettingsStorage struct {
	mu   sync.RWMutex
	file string
	data jsonData
}

var Settings = SettingsStorage{data: defaultSettings()}

func defaultSettings() jsonData {
	return jsonData{
		CommandPrefix:  "!",
		Database:       "discordbot.db",
		BotName:        "discordbot",
		Referee:        "refbot",
		WelcomeMessage: "Hi %s, welcome to my Discord server!",
		Dice:           DiceConfig{MaxCount: 150, MaxSides: 1000},
		Fighter:        FighterConfig{Health: 50, Endurance: 30, SendDelayMs: 500},
	}
}

// Load the settings from a json file, apply .env / environment overrides and stuff it into Settings.
func LoadSettings(settingsfile string) {
	if err := godotenv.Load(); err != nil {
		LogDebug("No .env file found, using the process environment")
	}
	data, err := readSettings(settingsfile)
	if err != nil {
		LogFatal("Failed to load configuration: ", err)
	}
	if data.AuthToken == "" {
		LogFatal("DISCORD_TOKEN not found in settings or environment variables")
	}
	Settings.replace(settingsfile, data)

	if !data.Development {
		SetLogLevel(lumber.INFO)
	} else {
		LogDebug("Loaded config successfully from ", settingsfile)
	}
}

// ReloadSettings re-reads the file LoadSettings was called with.
func ReloadSettings() error {
	Settings.mu.RLock()
	file := Settings.file
	Settings.mu.RUnlock()

	data, err := readSettings(file)
	if err != nil {
		return err
	}
	Settings.replace(file, data)
	LogInfo("Reloaded settings from ", file)
	return nil
}

func readSettings(settingsfile string) (jsonData, error) {
	data := defaultSettings()
	file, err := os.Open(settingsfile)
	if err != nil {
		return data, err
	}
	defer file.Close()
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return data, err
	}

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return data, err
	}
	if overrides.AuthToken != "" {
		data.AuthToken = overrides.AuthToken
	}
	if overrides.CommandPrefix != "" {
		data.CommandPrefix = overrides.CommandPrefix
	}
	if overrides.Database != "" {
		data.Database = overrides.Database
	}
	return data, nil
}

func (s *SettingsStorage) replace(file string, data jsonData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.file = file
	s.data = data
}

func (s *SettingsStorage) read() jsonData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Get the bot auth token
func (s *SettingsStorage) AuthToken() string {
	return s.read().AuthToken
}

// Get the prefix used for bot commands
func (s *SettingsStorage) CommandPrefix() string {
	return s.read().CommandPrefix
}

// Get whether or not we're running in Development mode.
func (s *SettingsStorage) IsDevelopment() bool {
	return s.read().Development
}

// Path of the sqlite database
func (s *SettingsStorage) Database() string {
	return s.read().Database
}

func (s *SettingsStorage) BotName() string {
	return s.read().BotName
}

// HotWords returns the configured hot words followed by the bot name, lower cased.
func (s *SettingsStorage) HotWords() []string {
	data := s.read()
	words := make([]string, 0, len(data.HotWords)+1)
	for _, w := range append(append([]string{}, data.HotWords...), data.BotName) {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			words = append(words, w)
		}
	}
	return words
}

func (s *SettingsStorage) Referee() string {
	return s.read().Referee
}

func (s *SettingsStorage) WelcomeMessage() string {
	return s.read().WelcomeMessage
}

func (s *SettingsStorage) OwnerIds() []string {
	return s.read().OwnerIds
}

func (s *SettingsStorage) IsOwner(userID string) bool {
	for _, id := range s.read().OwnerIds {
		if id == userID {
			return true
		}
	}
	return false
}

func (s *SettingsStorage) Dice() DiceConfig {
	return s.read().Dice
}

func (s *SettingsStorage) Fighter() FighterConfig {
	return s.read().Fighter
}

func (s *SettingsStorage) Responders() []Responder {
	return s.read().Responders
}

// SetForTest replaces the settings without touching the file system.
func (s *SettingsStorage) SetForTest(mutate func(data *SettingsData)) {
	data := defaultSettings()
	if mutate != nil {
		mutate(&data)
	}
	s.replace("", data)
}
