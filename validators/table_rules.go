package validators

import (
	"fmt"
	"strings"

	"github.com/restobook/reservation-app/models"
)

type TableRule struct {
	Name  string
	Check func(t *models.Table) error
}

var tableRules = []TableRule{
	{
		Name: "has-required-fields",
		Check: func(t *models.Table) error {
			if strings.TrimSpace(t.TableName) == "" || t.Capacity == 0 {
				return fmt.Errorf("The table must include a table_name and capacity.")
			}
			return nil
		},
	},
	{
		Name: "table-name-length",
		Check: func(t *models.Table) error {
			if len(t.TableName) < 2 {
				return fmt.Errorf("table_name must be at least 2 characters long")
			}
			return nil
		},
	},
	{
		Name: "capacity-minimum",
		Check: func(t *models.Table) error {
			if t.Capacity < 1 {
				return fmt.Errorf("capacity must be at least 1")
			}
			return nil
		},
	},
}

// ValidateTable runs the ordered rule set against a table payload,
// short-circuiting on the first violation.
func ValidateTable(t *models.Table) error {
	for _, rule := range tableRules {
		if err := rule.Check(t); err != nil {
			return err
		}
	}
	return nil
}
