package common

// TableProvider serves tables that are already held in memory.
type TableProvider struct {
	Tables []Table
}

// Ensure TableProvider implements RowProvider
var _ RowProvider = (*TableProvider)(nil)

// NewTableProvider returns a RowProvider over the given tables, in order.
func NewTableProvider(tables ...Table) *TableProvider {
	return &TableProvider{Tables: tables}
}

func (p *TableProvider) lookup(tableName string) *Table {
	for i := range p.Tables {
		if p.Tables[i].Name == tableName {
			return &p.Tables[i]
		}
	}
	return nil
}

// GetTableNames implements RowProvider
func (p *TableProvider) GetTableNames() []string {
	names := make([]string, len(p.Tables))
	for i, t := range p.Tables {
		names[i] = t.Name
	}
	return names
}

// GetHeaders implements RowProvider
func (p *TableProvider) GetHeaders(tableName string) []string {
	if t := p.lookup(tableName); t != nil {
		return t.Columns
	}
	return nil
}

// ScanRows implements RowProvider
func (p *TableProvider) ScanRows(tableName string, yield func([]string) error) error {
	t := p.lookup(tableName)
	if t == nil {
		return nil
	}
	for _, row := range t.Rows {
		if err := yield(row); err != nil {
			return err
		}
	}
	return nil
}
