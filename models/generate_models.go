package models

import (
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
	"sort"
	"strings"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
Column Mismatch Report Usage:

The report lists database columns that have no matching field in the
corresponding Go model. The catalog tables are owned by another team, so the
report is the first thing to run after they change the schema:

	catalog column-report

Example output:
=== COLUMN MISMATCH REPORT ===
--- Table: Catalog_data ---
Found 1 columns not accounted for in model:
  - ngay_tao

--- Table: logs ---
All columns are accounted for in the model.

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// OwnedModels are the tables this service migrates. The external database
// catalog is read-only and never migrated from here.
func OwnedModels() []any {
	return []any{&Initiative{}, &LogEntry{}, &Admin{}}
}

// reportModels maps every table the service reads to its model.
func reportModels() map[string]any {
	return map[string]any{
		Initiative{}.TableName():       Initiative{},
		LogEntry{}.TableName():         LogEntry{},
		Admin{}.TableName():            Admin{},
		ExternalDatabase{}.TableName(): ExternalDatabase{},
		ExternalTable{}.TableName():    ExternalTable{},
		ExternalField{}.TableName():    ExternalField{},
	}
}

// GenerateModels migrates the owned tables, prints the column report and
// writes typed query code to outPath.
func GenerateModels(db *gorm.DB, outPath string) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	migrateDB := db.Session(&gorm.Session{
		Logger:                 newLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	if outPath == "" {
		outPath = "./generated"
	}
	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(migrateDB)
	g.ApplyBasic(
		Initiative{},
		LogEntry{},
		Admin{},
		ExternalDatabase{},
		ExternalTable{},
		ExternalField{},
	)

	fmt.Println("Migrating owned models...")
	if err := migrateDB.AutoMigrate(OwnedModels()...); err != nil {
		return fmt.Errorf("error during models migration: %w", err)
	}
	fmt.Println("Database migration completed successfully!")

	if _, err := GenerateColumnMismatchReport(db, os.Stdout); err != nil {
		return err
	}

	g.Execute()
	fmt.Println("Model generation complete!")
	return nil
}

// GenerateColumnMismatchReport writes the report to w and returns the total
// number of unmapped columns.
func GenerateColumnMismatchReport(db *gorm.DB, w io.Writer) (int, error) {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return 0, fmt.Errorf("error connecting to database: %w", err)
	}

	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	mappings := reportModels()
	tables := make([]string, 0, len(mappings))
	for name := range mappings {
		tables = append(tables, name)
	}
	sort.Strings(tables)

	total := 0
	for _, tableName := range tables {
		fmt.Fprintf(w, "\n--- Table: %s ---\n", tableName)

		dbColumns, err := getTableColumns(db, tableName)
		if err != nil {
			if strings.Contains(err.Error(), "does not exist") {
				fmt.Fprintln(w, "Table does not exist")
			} else {
				fmt.Fprintf(w, "Error getting columns for table %s: %v\n", tableName, err)
			}
			continue
		}

		mismatches := findColumnMismatches(dbColumns, getModelFields(mappings[tableName]))
		if len(mismatches) == 0 {
			fmt.Fprintln(w, "All columns are accounted for in the model.")
			continue
		}
		fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(mismatches))
		for _, col := range mismatches {
			fmt.Fprintf(w, "  - %s\n", col)
		}
		total += len(mismatches)
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", total)
	return total, nil
}

// getTableColumns retrieves column names from a database table
func getTableColumns(db *gorm.DB, tableName string) ([]string, error) {
	var columns []string
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position
	`
	if err := db.Raw(query, tableName).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
	}

	if len(columns) == 0 {
		var tableExists bool
		tableQuery := `
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_schema = CURRENT_SCHEMA()
				AND table_name = ?
			)
		`
		if err := db.Raw(tableQuery, tableName).Scan(&tableExists).Error; err != nil {
			return nil, fmt.Errorf("error checking if table %s exists: %w", tableName, err)
		}
		if !tableExists {
			return nil, fmt.Errorf("table %s does not exist", tableName)
		}
	}

	return columns, nil
}

// getModelFields extracts gorm column names from a struct. Relation fields
// (slices of models) carry no column tag and are skipped.
func getModelFields(model any) []string {
	var fields []string
	t := reflect.TypeOf(model)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			continue
		}
		if columnName := extractColumnNameFromGormTag(field.Tag.Get("gorm")); columnName != "" {
			fields = append(fields, columnName)
		}
	}

	return fields
}

func extractColumnNameFromGormTag(gormTag string) string {
	for _, part := range strings.Split(gormTag, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}
	return mismatches
}
