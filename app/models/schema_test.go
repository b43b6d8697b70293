package models

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var varcharRe = regexp.MustCompile(`varchar\((\d+)\)`)

func gormVarcharSize(t *testing.T, model interface{}, field string) string {
	t.Helper()
	f, ok := reflect.TypeOf(model).FieldByName(field)
	require.True(t, ok, "field %s not found", field)
	m := varcharRe.FindStringSubmatch(f.Tag.Get("gorm"))
	require.Len(t, m, 2, "field %s has no varchar size in its gorm tag", field)
	return m[1]
}

// SetupDatabase runs AutoMigrate over these models on top of the migration
// schema, so the column sizes in the tags must match the SQL or the two
// will keep rewriting each other.
func TestColumnSizesMatchMigration(t *testing.T) {
	sql, err := os.ReadFile(filepath.Join("..", "..", "migrations", "000001_create_core_tables.up.sql"))
	require.NoError(t, err)
	schema := string(sql)

	tests := []struct {
		model  interface{}
		field  string
		column string
	}{
		{User{}, "Name", "name"},
		{User{}, "Email", "email"},
		{User{}, "Password", "password"},
		{User{}, "Status", "status"},
		{User{}, "ProviderID", "provider_id"},
		{Profile{}, "FullName", "full_name"},
		{Profile{}, "AvatarURL", "avatar_url"},
		{Profile{}, "Plan", "plan"},
		{Automation{}, "Name", "name"},
		{StripeSubscription{}, "CustomerID", "customer_id"},
		{StripeSubscription{}, "Status", "status"},
		{StripeSubscription{}, "PaymentMethodBrand", "payment_method_brand"},
		{BillingWebhookEvent{}, "Provider", "provider"},
		{BillingWebhookEvent{}, "ProviderEventID", "provider_event_id"},
	}

	for _, tt := range tests {
		size := gormVarcharSize(t, tt.model, tt.field)
		assert.Contains(t, schema, fmt.Sprintf("%s VARCHAR(%s)", tt.column, size),
			"%T.%s declares varchar(%s) but the migration disagrees", tt.model, tt.field, size)
	}
}
