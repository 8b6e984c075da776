package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/ingestion"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store writes ingested units into the canonical unit library (Postgres).
type Store struct {
	Pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

func (s *Store) UpsertChassis(ctx context.Context, tx pgx.Tx, name string, tonnage int, techBase string) (int, error) {
	tb := string(construct.NormalizeTechBase(techBase))
	var id int
	// Try insert, on conflict just select
	err := tx.QueryRow(ctx,
		`INSERT INTO chassis (name, tonnage, tech_base)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE SET tonnage = EXCLUDED.tonnage
		 RETURNING id`, name, tonnage, tb).Scan(&id)
	return id, err
}

func (s *Store) InsertVariant(ctx context.Context, tx pgx.Tx, chassisID int, data *ingestion.MTFData) (int, error) {
	era := eraFromYear(data.Era)
	var mulID *int
	if data.MulID > 0 {
		mulID = &data.MulID
	}
	var introYear *int
	if data.Era > 0 {
		introYear = &data.Era
	}
	var rulesLevel *int
	if data.RulesLevel > 0 {
		rulesLevel = &data.RulesLevel
	}

	var id int
	err := tx.QueryRow(ctx,
		`INSERT INTO variants (chassis_id, model_code, name, mul_id, config, source, rules_level, intro_year, era)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		chassisID, data.Model, data.FullName(), mulID, data.Config, data.Source, rulesLevel, introYear, era,
	).Scan(&id)
	return id, err
}

// InsertVariantConfig stores the derived stats plus the full editor
// configuration as JSON, so the editor can open a canonical variant directly.
func (s *Store) InsertVariantConfig(ctx context.Context, tx pgx.Tx, variantID int, unit models.UnitConfiguration) error {
	cfg, err := json.Marshal(unit)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	isTotal := construct.InternalStructurePoints[unit.Tonnage]
	_, err = tx.Exec(ctx,
		`INSERT INTO variant_stats
		 (variant_id, walk_mp, run_mp, jump_mp, armor_total, internal_structure_total,
		  heat_sink_count, heat_sink_type, engine_type, engine_rating,
		  gyro_type, structure_type, armor_type, unit_config)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		variantID, unit.WalkMP, unit.RunMP(), unit.JumpMP,
		unit.Armor.TotalPoints(), isTotal,
		unit.HeatSinkCnt, unit.HeatSinks.Type, unit.Engine.Type, unit.EngineRating(),
		unit.Gyro.Type, unit.Structure.Type, unit.Armor.Type, string(cfg),
	)
	return err
}

// IngestMTF writes one parsed record and its converted configuration in a
// single transaction.
func (s *Store) IngestMTF(ctx context.Context, data *ingestion.MTFData, unit models.UnitConfiguration) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	chassisID, err := s.UpsertChassis(ctx, tx, data.Chassis, data.Mass, data.TechBase)
	if err != nil {
		return fmt.Errorf("upsert chassis %q: %w", data.Chassis, err)
	}

	variantID, err := s.InsertVariant(ctx, tx, chassisID, data)
	if err != nil {
		return fmt.Errorf("insert variant %q: %w", data.FullName(), err)
	}

	if err := s.InsertVariantConfig(ctx, tx, variantID, unit); err != nil {
		return fmt.Errorf("insert config for %q: %w", data.FullName(), err)
	}

	return tx.Commit(ctx)
}

func eraFromYear(year int) string {
	if year <= 0 {
		return ""
	}
	switch {
	case year <= 2570:
		return "Age of War"
	case year <= 2780:
		return "Star League"
	case year <= 2900:
		return "Early Succession Wars"
	case year <= 3049:
		return "Late Succession Wars"
	case year <= 3061:
		return "Clan Invasion"
	case year <= 3067:
		return "Civil War"
	case year <= 3081:
		return "Jihad"
	case year <= 3150:
		return "Dark Age"
	default:
		return "ilClan"
	}
}
