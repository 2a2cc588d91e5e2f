package windows

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magpierre/datagrid/datatable"
)

func newPeopleModel(t *testing.T, per int) *datatable.TableModel {
	t.Helper()
	store, err := datatable.NewRecordStore(
		datatable.Column{Key: "name", Label: "Name", Sortable: true, Editable: true},
		datatable.Column{Key: "age", Label: "Age", Sortable: true, Editable: true, Type: datatable.TypeNumber},
		datatable.Column{Key: "status", Label: "Status", Editable: true, Type: datatable.TypeSelect, Options: []string{"active", "inactive"}},
	)
	require.NoError(t, err)
	for _, r := range []datatable.Row{
		datatable.NewRow("1", map[string]interface{}{"name": "Bob", "age": 30, "status": "active"}),
		datatable.NewRow("2", map[string]interface{}{"name": "Ann", "age": 25, "status": "inactive"}),
		datatable.NewRow("3", map[string]interface{}{"name": "Cid", "age": 30, "status": "active"}),
		datatable.NewRow("4", map[string]interface{}{"name": "Dee", "age": 41, "status": "inactive"}),
		datatable.NewRow("5", map[string]interface{}{"name": "Eve", "age": 25, "status": "active"}),
	} {
		require.NoError(t, store.Add(r))
	}
	cfg := datatable.DefaultConfig()
	cfg.ItemsPerPage = per
	return datatable.NewTableModel(store, cfg)
}
