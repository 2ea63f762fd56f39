package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/restobook/reservation-app/models"
)

func TestValidateTable(t *testing.T) {
	cases := []struct {
		name    string
		table   models.Table
		wantErr string
	}{
		{"valid", models.Table{TableName: "A1", Capacity: 4}, ""},
		{"missing name", models.Table{Capacity: 4}, "table_name and capacity"},
		{"missing capacity", models.Table{TableName: "A1"}, "table_name and capacity"},
		{"short name", models.Table{TableName: "A", Capacity: 4}, "at least 2 characters"},
		{"negative capacity", models.Table{TableName: "A1", Capacity: -1}, "at least 1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tbl := tc.table
			err := ValidateTable(&tbl)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}
