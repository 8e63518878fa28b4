package core

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(file, []byte(body), 0o600); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}
	return file
}

func TestReadSettings_Defaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	file := writeSettings(t, `{"AuthToken": "abc", "HotWords": ["RollBot", " "]}`)

	data, err := readSettings(file)
	if err != nil {
		t.Fatalf("readSettings failed: %v", err)
	}
	if data.AuthToken != "abc" {
		t.Errorf("Expected AuthToken='abc', got '%s'", data.AuthToken)
	}
	if data.CommandPrefix != "!" {
		t.Errorf("Expected default prefix '!', got '%s'", data.CommandPrefix)
	}
	if data.Dice.MaxCount != 150 || data.Dice.MaxSides != 1000 {
		t.Errorf("Expected dice limits 150d1000, got %dd%d", data.Dice.MaxCount, data.Dice.MaxSides)
	}
	if data.Fighter.Health != 50 || data.Fighter.Endurance != 30 {
		t.Errorf("Expected fighter 50/30, got %d/%d", data.Fighter.Health, data.Fighter.Endurance)
	}
}

func TestReadSettings_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "from-env")
	t.Setenv("COMMAND_PREFIX", "?")
	t.Setenv("DATABASE_PATH", ":memory:")
	file := writeSettings(t, `{"AuthToken": "from-file", "CommandPrefix": "!"}`)

	data, err := readSettings(file)
	if err != nil {
		t.Fatalf("readSettings failed: %v", err)
	}
	if data.AuthToken != "from-env" {
		t.Errorf("Expected env token to win, got '%s'", data.AuthToken)
	}
	if data.CommandPrefix != "?" {
		t.Errorf("Expected env prefix '?', got '%s'", data.CommandPrefix)
	}
	if data.Database != ":memory:" {
		t.Errorf("Expected env database, got '%s'", data.Database)
	}
}

func TestReadSettings_MissingFile(t *testing.T) {
	if _, err := readSettings(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected an error for a missing settings file")
	}
}

func TestHotWords(t *testing.T) {
	Settings.SetForTest(func(data *SettingsData) {
		data.BotName = "FightBot"
		data.HotWords = []string{"Fighter", "  ", "@brawler"}
	})
	defer Settings.SetForTest(nil)

	got := Settings.HotWords()
	want := []string{"fighter", "@brawler", "fightbot"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("HotWords()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIsOwner(t *testing.T) {
	Settings.SetForTest(func(data *SettingsData) {
		data.OwnerIds = []string{"42"}
	})
	defer Settings.SetForTest(nil)

	if !Settings.IsOwner("42") {
		t.Error("Expected 42 to be an owner")
	}
	if Settings.IsOwner("7") {
		t.Error("Expected 7 not to be an owner")
	}
}
