package database

import (
	"database/sql"

	"Discordbot/core"
)

const fightSchema = `
CREATE TABLE IF NOT EXISTS fightrecord (
	opponent TEXT PRIMARY KEY,
	wins INTEGER NOT NULL DEFAULT 0,
	losses INTEGER NOT NULL DEFAULT 0,
	exhaustions INTEGER NOT NULL DEFAULT 0,
	last_fought INTEGER NOT NULL
);
`

type FightResult int

const (
	FightWon FightResult = iota
	FightLost
	FightExhausted
)

var fightColumns = map[FightResult]string{
	FightWon:       "wins",
	FightLost:      "losses",
	FightExhausted: "exhaustions",
}

// FightRecord is the running score against one opponent.
type FightRecord struct {
	Opponent    string `db:"opponent"`
	Wins        int    `db:"wins"`
	Losses      int    `db:"losses"`
	Exhaustions int    `db:"exhaustions"`
	LastFought  int64  `db:"last_fought"`
}

// RecordFight adds one result against opponent at unix time when.
func RecordFight(opponent string, result FightResult, when int64) bool {
	column, ok := fightColumns[result]
	if !ok {
		core.LogErrorF("Unknown fight result %d", result)
		return false
	}
	mu.Lock()
	defer mu.Unlock()
	if !isOpen() {
		return false
	}

	_, err := database.Exec(`
		INSERT INTO fightrecord (opponent, `+column+`, last_fought) VALUES (?, 1, ?)
		ON CONFLICT(opponent) DO UPDATE SET `+column+` = `+column+` + 1, last_fought = excluded.last_fought
	`, opponent, when)
	if err != nil {
		core.LogErrorF("Failed to record fight against %s: %s", opponent, err)
		return false
	}
	return true
}

func FetchFightRecord(opponent string) *FightRecord {
	mu.RLock()
	defer mu.RUnlock()
	if !isOpen() {
		return nil
	}
	record := FightRecord{}
	err := database.Get(&record, "SELECT * FROM fightrecord WHERE opponent=?", opponent)
	switch err {
	case nil:
		return &record
	case sql.ErrNoRows:
		return nil
	default:
		core.LogErrorF("Failed to fetch fight record for %s: %s", opponent, err)
		return nil
	}
}

// FetchFightRecords returns every record, most wins first.
func FetchFightRecords() []FightRecord {
	mu.RLock()
	defer mu.RUnlock()
	if !isOpen() {
		return nil
	}
	var records []FightRecord
	err := database.Select(&records, "SELECT * FROM fightrecord ORDER BY wins DESC, opponent ASC")
	if err != nil {
		core.LogErrorF("Failed to fetch fight records: %s", err)
		return nil
	}
	return records
}
