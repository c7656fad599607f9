package domain

import "testing"

func TestDatabaseType_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		dbType DatabaseType
		want   bool
	}{
		{
			name:   "postgresql is valid",
			dbType: DatabaseTypePostgreSQL,
			want:   true,
		},
		{
			name:   "mysql is valid",
			dbType: DatabaseTypeMySQL,
			want:   true,
		},
		{
			name:   "sqlite is valid",
			dbType: DatabaseTypeSQLite,
			want:   true,
		},
		{
			name:   "mongodb is valid",
			dbType: DatabaseTypeMongoDB,
			want:   true,
		},
		{
			name:   "driver name is not a store kind",
			dbType: DatabaseType("postgres"),
			want:   false,
		},
		{
			name:   "empty type",
			dbType: DatabaseType(""),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dbType.IsValid(); got != tt.want {
				t.Errorf("DatabaseType.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDatabaseType_IsSQL(t *testing.T) {
	if !DatabaseTypePostgreSQL.IsSQL() {
		t.Error("postgresql should be a SQL store")
	}
	if DatabaseTypeMongoDB.IsSQL() {
		t.Error("mongodb should not be a SQL store")
	}
}

func TestDatabaseType_DriverName(t *testing.T) {
	if got := DatabaseTypePostgreSQL.DriverName(); got != "postgres" {
		t.Errorf("DriverName() = %q, want %q", got, "postgres")
	}
	if got := DatabaseTypeMySQL.DriverName(); got != "" {
		t.Errorf("DriverName() = %q, want empty", got)
	}
}
