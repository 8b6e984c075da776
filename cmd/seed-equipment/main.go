package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	_ "modernc.org/sqlite"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/catalog"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
)

// Item mirrors the catalog schema; the JSON file is the hand-curated
// component list plus whatever extract tooling produced.
type Item struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	TechBase string  `json:"tech_base"`
	Tonnage  float64 `json:"tonnage"`
	Slots    int     `json:"slots"`
	Heat     int     `json:"heat"`
	Type     string  `json:"type"`
}

func main() {
	input := flag.String("input", "", "equipment JSON file (omit to seed only the built-in components)")
	out := flag.String("out", "equipment.db", "output SQLite catalog path")
	flag.Parse()

	var items []Item
	if *input != "" {
		data, err := os.ReadFile(*input)
		if err != nil {
			log.Fatalf("Read: %v", err)
		}
		if err := json.Unmarshal(data, &items); err != nil {
			log.Fatalf("JSON: %v", err)
		}
	}

	os.Remove(*out)
	db, err := sql.Open("sqlite", *out)
	if err != nil {
		log.Fatalf("sqlite open: %v", err)
	}
	defer db.Close()

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	} {
		db.Exec(pragma)
	}

	if _, err := db.Exec(`CREATE TABLE equipment (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		tech_base TEXT NOT NULL,
		tonnage REAL NOT NULL DEFAULT 0,
		slots INTEGER NOT NULL DEFAULT 0,
		heat INTEGER NOT NULL DEFAULT 0,
		type TEXT NOT NULL DEFAULT '',
		UNIQUE(name, category, tech_base)
	)`); err != nil {
		log.Fatalf("create table: %v", err)
	}

	insert := func(name, category, techBase string, tonnage float64, slots, heat int, typ string) {
		_, err := db.Exec(
			`INSERT INTO equipment (name, category, tech_base, tonnage, slots, heat, type)
			 VALUES (?, ?, ?, ?, ?, ?, ?) ON CONFLICT DO NOTHING`,
			name, category, techBase, tonnage, slots, heat, typ)
		if err != nil {
			log.Printf("Insert %s: %v", name, err)
		}
	}

	// The structural components every deployment needs come from the
	// built-in catalog, so the server and the DB never disagree on them.
	builtin := 0
	for _, it := range builtinItems() {
		insert(it.Name, string(it.Category), string(it.TechBase), it.Tonnage, it.Slots, it.Heat, it.Type)
		builtin++
	}

	count := 0
	for _, it := range items {
		if it.Name == "" || it.Category == "" {
			continue
		}
		insert(it.Name, it.Category, it.TechBase, it.Tonnage, it.Slots, it.Heat, it.Type)
		count++
	}
	fmt.Printf("Seeded %d built-in components and %d equipment items into %s\n", builtin, count, *out)
}

func builtinItems() []catalog.Item {
	svc := catalog.NewBuiltin()
	// Mixed context disables tech-base filtering; both variants come back.
	svc.SetContext(catalog.TechContext{TechBase: construct.Mixed})
	res, err := svc.Search(context.Background(), catalog.Query{PageSize: 10000})
	if err != nil {
		log.Fatalf("builtin catalog: %v", err)
	}
	return res.Items
}
