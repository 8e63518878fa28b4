package database

import (
	"database/sql"
	"sync"

	"Discordbot/core"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var schema = `
CREATE TABLE IF NOT EXISTS commandalias ( id INTEGER PRIMARY KEY AUTOINCREMENT , pmenabled INTEGER DEFAULT 0, group_id INTEGER, command VARCHAR UNIQUE, help VARCHAR, longhelp VARCHAR, value VARCHAR );
CREATE INDEX IF NOT EXISTS commandalias_command_index ON commandalias (command);
CREATE INDEX IF NOT EXISTS commandalias_group_index ON commandalias (group_id);

CREATE TABLE IF NOT EXISTS commandgroup ( id INTEGER PRIMARY KEY AUTOINCREMENT , parent INTEGER, command VARCHAR UNIQUE, help VARCHAR );
CREATE INDEX IF NOT EXISTS commandgroup_command_index ON commandgroup (command);
`

type CommandAlias struct {
	Id             int
	PMEnabled      bool
	GroupId        *int `db:"group_id"`
	Command, Value string
	Help, Longhelp *string
}

// CommandGroup is a category of custom commands.
type CommandGroup struct {
	Id      int
	Parent  *int
	Command string
	Help    *string
}

var database *sqlx.DB
var mu sync.RWMutex

func InitializeDatabase() {
	db, err := sqlx.Connect("sqlite3", core.Settings.Database())
	if err != nil {
		core.LogFatal("Failed to create database: ", err)
	}
	if core.Settings.Database() == ":memory:" {
		// each connection would see its own empty database
		db.SetMaxOpenConns(1)
	}

	// sqlite3 runs every statement of a multi statement Exec
	db.MustExec(schema)
	db.MustExec(fightSchema)
	mu.Lock()
	database = db
	mu.Unlock()
	core.LogInfoF("Opened database %s", core.Settings.Database())
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	if database != nil {
		database.Close()
		database = nil
	}
}

func isOpen() bool {
	if database == nil {
		core.LogError("Database isn't open. Shouldn't happen.")
		return false
	}
	return true
}

func FetchCommandAlias(cmd string) *CommandAlias {
	mu.RLock()
	defer mu.RUnlock()
	if !isOpen() {
		return nil
	}
	command := CommandAlias{}
	err := database.Get(&command, "SELECT * FROM commandalias WHERE command=?", cmd)
	switch err {
	case nil:
		core.LogDebugF("Loaded command: %#v", command)
		return &command
	case sql.ErrNoRows:
		return nil
	default:
		core.LogErrorF("Failed to fetch command %s: %s", cmd, err)
		return nil
	}
}

// AddCommandAlias stores a new custom command. It fails if the name is taken.
func AddCommandAlias(cmd, value string) bool {
	mu.Lock()
	defer mu.Unlock()
	if !isOpen() {
		return false
	}
	_, err := database.Exec("INSERT INTO commandalias (command, value) VALUES (?, ?)", cmd, value)
	if err != nil {
		core.LogErrorF("Failed to add command %s: %s", cmd, err)
		return false
	}
	core.LogInfoF("Added command %s", cmd)
	return true
}

func EditCommandAlias(cmd, value string) bool {
	return update("edit command "+cmd, "UPDATE commandalias SET value=? WHERE command=?", value, cmd)
}

func RemoveCommandAlias(cmd string) bool {
	return update("remove command "+cmd, "DELETE FROM commandalias WHERE command=?", cmd)
}

// SetLongHelp sets or clears the detailed help of a command, and whether it is sent in private.
func SetLongHelp(cmd string, help *string, pmEnabled bool) bool {
	return update("set long help for command "+cmd,
		"UPDATE commandalias SET longhelp=?, pmenabled=? WHERE command=?", help, pmEnabled && help != nil, cmd)
}

// SetHelp sets or, with a nil help, clears the help text of a command or category.
func SetHelp(name string, help *string) bool {
	if update("set help for command "+name, "UPDATE commandalias SET help=? WHERE command=?", help, name) {
		return true
	}
	return update("set help for category "+name, "UPDATE commandgroup SET help=? WHERE command=?", help, name)
}

// update runs a statement and reports whether it touched any row.
func update(what, query string, args ...interface{}) bool {
	mu.Lock()
	defer mu.Unlock()
	if !isOpen() {
		return false
	}
	res, err := database.Exec(query, args...)
	if err != nil {
		core.LogErrorF("Failed to %s: %s", what, err)
		return false
	}
	n, err := res.RowsAffected()
	if err != nil {
		core.LogErrorF("Failed to %s: %s", what, err)
		return false
	}
	return n > 0
}

func FetchCommandGroup(cmd string) *CommandGroup {
	mu.RLock()
	defer mu.RUnlock()
	if !isOpen() {
		return nil
	}
	return fetchCommandGroup(cmd)
}

func fetchCommandGroup(cmd string) *CommandGroup {
	command := CommandGroup{}
	err := database.Get(&command, "SELECT * FROM commandgroup WHERE command=?", cmd)
	switch err {
	case nil:
		core.LogDebugF("Loaded command group: %#v", command)
		return &command
	case sql.ErrNoRows:
		return nil
	default:
		core.LogErrorF("Failed to fetch command group %s: %s", cmd, err)
		return nil
	}
}

func FetchCommandGroups() []CommandGroup {
	mu.RLock()
	defer mu.RUnlock()
	if !isOpen() {
		return nil
	}

	var groups []CommandGroup
	err := database.Select(&groups, "SELECT * FROM commandgroup ORDER BY command ASC")
	if err != nil {
		core.LogErrorF("Failed to fetch command groups: %s", err)
		return nil
	}
	core.LogDebugF("Loaded command groups: %#v", groups)
	return groups
}

func (c *CommandGroup) FetchCommands() []CommandAlias {
	mu.RLock()
	defer mu.RUnlock()
	if !isOpen() {
		return nil
	}

	var commands []CommandAlias
	err := database.Select(&commands, "SELECT * FROM commandalias WHERE group_id=? ORDER BY command ASC", c.Id)
	if err != nil {
		core.LogErrorF("Failed to fetch commands for command group %s: %s", c.Command, err)
		return nil
	}
	core.LogDebugF("Loaded command group [%s] commands: %#v", c.Command, commands)
	return commands
}

func FetchStandaloneCommands() []CommandAlias {
	mu.RLock()
	defer mu.RUnlock()
	if !isOpen() {
		return nil
	}

	var commands []CommandAlias
	err := database.Select(&commands, "SELECT * FROM commandalias WHERE group_id IS NULL ORDER BY command ASC")
	if err != nil {
		core.LogErrorF("Failed to fetch standalone commands: %s", err)
		return nil
	}
	core.LogDebugF("Loaded commands: %#v", commands)
	return commands
}

// AddToCategory moves an existing command into category, creating the category on demand.
func AddToCategory(category, cmd string) bool {
	mu.Lock()
	defer mu.Unlock()
	if !isOpen() {
		return false
	}

	tx, err := database.Beginx()
	if err != nil {
		core.LogErrorF("Failed to start transaction: %s", err)
		return false
	}
	defer tx.Rollback()

	if _, err := tx.Exec("INSERT OR IGNORE INTO commandgroup (command) VALUES (?)", category); err != nil {
		core.LogErrorF("Failed to create category %s: %s", category, err)
		return false
	}
	res, err := tx.Exec("UPDATE commandalias SET group_id=(SELECT id FROM commandgroup WHERE command=?) WHERE command=?", category, cmd)
	if err != nil {
		core.LogErrorF("Failed to add %s to category %s: %s", cmd, category, err)
		return false
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false
	}
	if err := tx.Commit(); err != nil {
		core.LogErrorF("Failed to add %s to category %s: %s", cmd, category, err)
		return false
	}
	return true
}

// RemoveFromCategory makes cmd standalone again if it belongs to category.
func RemoveFromCategory(category, cmd string) bool {
	return update("remove "+cmd+" from category "+category,
		"UPDATE commandalias SET group_id=NULL WHERE command=? AND group_id=(SELECT id FROM commandgroup WHERE command=?)",
		cmd, category)
}

// DeleteCategory removes a category; its commands become standalone.
func DeleteCategory(category string) bool {
	mu.Lock()
	defer mu.Unlock()
	if !isOpen() {
		return false
	}

	group := fetchCommandGroup(category)
	if group == nil {
		return false
	}
	tx, err := database.Beginx()
	if err != nil {
		core.LogErrorF("Failed to start transaction: %s", err)
		return false
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE commandalias SET group_id=NULL WHERE group_id=?", group.Id); err != nil {
		core.LogErrorF("Failed to release commands of %s: %s", category, err)
		return false
	}
	if _, err := tx.Exec("DELETE FROM commandgroup WHERE id=?", group.Id); err != nil {
		core.LogErrorF("Failed to delete category %s: %s", category, err)
		return false
	}
	if err := tx.Commit(); err != nil {
		core.LogErrorF("Failed to delete category %s: %s", category, err)
		return false
	}
	core.LogInfoF("Deleted category %s", category)
	return true
}
