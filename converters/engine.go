package converters

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/darianmavgo/mkfixture/converters/common"
	"github.com/darianmavgo/mkfixture/workspace"
)

const (
	// DefaultStatementSuffix is appended to a source's base name to name its fixture file.
	DefaultStatementSuffix = ".sql"
	// DefaultCombinedName is the entry the Aggregator writes.
	DefaultCombinedName = "all.sql"
)

// Options configures a fixture generation run.
type Options struct {
	StatementSuffix string // Suffix of fixture files, default ".sql"
	CombinedName    string // Name of the combined output, default "all.sql"
	SortSources     bool   // Process entries in name order instead of enumeration order
	Verbose         bool   // If true, enables detailed logging.
	Conversion      common.ConversionConfig
}

func (o *Options) statementSuffix() string {
	if o == nil || o.StatementSuffix == "" {
		return DefaultStatementSuffix
	}
	return o.StatementSuffix
}

func (o *Options) combinedName() string {
	if o == nil || o.CombinedName == "" {
		return DefaultCombinedName
	}
	return o.CombinedName
}

func (o *Options) verbose() bool {
	return o != nil && (o.Verbose || o.Conversion.Verbose)
}

func (o *Options) entries(ws workspace.Workspace) ([]string, error) {
	names, err := ws.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list workspace: %w", err)
	}
	if o != nil && o.SortSources {
		sort.Strings(names)
	}
	return names, nil
}

// Run generates a fixture file for every recognized source and then combines
// all fixture files into the combined output.
func Run(ws workspace.Workspace, opts *Options) error {
	if _, err := Generate(ws, opts); err != nil {
		return err
	}
	return Combine(ws, opts)
}

// Generate walks the workspace and converts every entry that has a registered
// driver into a fixture file named <base><statement suffix>. It returns the
// names of the written fixture files in processing order.
//
// The first failing source aborts the walk. Its partial fixture file is removed;
// fixture files written for earlier sources are kept.
func Generate(ws workspace.Workspace, opts *Options) ([]string, error) {
	names, err := opts.entries(ws)
	if err != nil {
		return nil, err
	}

	var written []string
	sources := make(map[string]string) // fixture file -> source
	for _, name := range names {
		driverName, ok := DriverFor(name)
		if !ok {
			continue
		}
		dest := common.BaseName(name) + opts.statementSuffix()
		if prev, dup := sources[dest]; dup {
			return written, fmt.Errorf("sources %s and %s both map to %s", prev, name, dest)
		}
		if dest == opts.combinedName() {
			return written, fmt.Errorf("source %s maps to the combined output %s", name, dest)
		}
		sources[dest] = name

		if opts.verbose() {
			log.Printf("[MKFIXTURE] Converting %s (%s) to %s", name, driverName, dest)
		}
		if err := convertSource(ws, name, driverName, dest, opts); err != nil {
			return written, err
		}
		written = append(written, dest)
	}
	return written, nil
}

// convertSource writes the fixture file for a single source.
func convertSource(ws workspace.Workspace, name, driverName, dest string, opts *Options) (err error) {
	src, err := ws.Open(name)
	if err != nil {
		return fmt.Errorf("failed to open source %s: %w", name, err)
	}
	defer src.Close()

	var cfg common.ConversionConfig
	if opts != nil {
		cfg = opts.Conversion
	}
	cfg.TableName = common.BaseName(name)
	if cfg.SanitizeNames {
		cfg.TableName = common.GenTableNames([]string{cfg.TableName})[0]
	}

	provider, err := Open(driverName, src, &cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize converter for %s: %w", name, err)
	}

	// Clean up converter resources if it implements io.Closer
	if c, ok := provider.(io.Closer); ok {
		defer c.Close()
	}

	out, err := ws.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", dest, closeErr)
		}
		if err != nil {
			if rmErr := ws.Remove(dest); rmErr != nil {
				log.Printf("[MKFIXTURE] Failed to remove partial output %s: %v", dest, rmErr)
			}
		}
	}()

	if err := WriteFixture(out, provider, &cfg); err != nil {
		return fmt.Errorf("failed to convert %s: %w", name, err)
	}
	return nil
}

// WriteFixture writes the statements for every table of provider to w, one
// statement per line: a create statement followed by one insert per row.
func WriteFixture(w io.Writer, provider common.RowProvider, cfg *common.ConversionConfig) error {
	if cfg == nil {
		cfg = &common.ConversionConfig{}
	}
	for _, tableName := range provider.GetTableNames() {
		rows, err := writeTableSQL(w, provider, tableName, cfg)
		if err != nil {
			return err
		}
		if cfg.Verbose {
			log.Printf("[MKFIXTURE] Finished table %s, total rows: %d", tableName, rows)
		}
	}
	return nil
}

func writeTableSQL(w io.Writer, provider common.RowProvider, tableName string, cfg *common.ConversionConfig) (int, error) {
	headers := provider.GetHeaders(tableName)
	if cfg.SanitizeNames {
		headers = common.GenColumnNames(headers)
	}

	var (
		colTypes []common.ColumnType
		created  bool
		rowCount int
	)

	// The first row decides the column types, so the create statement is
	// written when it arrives (or after the scan if there are no rows).
	writeCreate := func(sample []string) error {
		var err error
		colTypes, err = cfg.TypeStrategy().Resolve(tableName, headers, sample)
		if err != nil {
			return fmt.Errorf("failed to resolve column types for table %s: %w", tableName, err)
		}
		created = true
		createSQL, err := common.GenCreateTableSQL(tableName, headers, colTypes)
		if err != nil {
			return err
		}
		return writeStatement(w, common.Statement{Kind: common.CreateStmt, Text: createSQL})
	}

	err := provider.ScanRows(tableName, func(row []string) error {
		rowCount++
		if !created {
			sample, err := sampleRow(tableName, row, len(headers), cfg.Rows)
			if err != nil {
				return err
			}
			if err := writeCreate(sample); err != nil {
				return err
			}
		}

		fitted, err := common.FitRow(tableName, rowCount, row, colTypes, cfg.Rows)
		if err != nil {
			return err
		}
		insertSQL, err := common.GenInsertSQL(tableName, fitted, colTypes, cfg.Quotes)
		if err != nil {
			return fmt.Errorf("row %d: %w", rowCount, err)
		}
		return writeStatement(w, common.Statement{Kind: common.InsertStmt, Text: insertSQL})
	})
	if err != nil {
		return rowCount, err
	}

	if !created {
		if err := writeCreate(nil); err != nil {
			return 0, err
		}
	}
	return rowCount, nil
}

// sampleRow checks the first data row against the header before it is used
// for type inference. Under RowPad, missing fields are inferred from "".
func sampleRow(tableName string, row []string, width int, policy common.RowPolicy) ([]string, error) {
	if len(row) == width {
		return row, nil
	}
	if policy != common.RowPad {
		return nil, fmt.Errorf("%w: table %s row 1 has %d fields, want %d", common.ErrSchemaMismatch, tableName, len(row), width)
	}
	sample := make([]string, width)
	copy(sample, row)
	return sample, nil
}

func writeStatement(w io.Writer, stmt common.Statement) error {
	if _, err := io.WriteString(w, stmt.Text+"\n"); err != nil {
		return fmt.Errorf("failed to write %s statement: %w", strings.ToLower(string(stmt.Kind)), err)
	}
	return nil
}
