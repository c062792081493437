package validator

import "testing"

func TestStatementKind(t *testing.T) {
	v := New()
	cases := []struct {
		sql  string
		want string
	}{
		{"CREATE TABLE t0 (c0 INT, c1 VARCHAR(255))", "CREATE"},
		{"SELECT * FROM t0 WHERE ((c0 = 1) AND TRUE)", "SELECT"},
		{"INSERT INTO t0 (c0) VALUES (1), (NULL)", "INSERT"},
		{"DELETE FROM t0 WHERE FALSE", "DELETE"},
		{"DROP TABLE t0", "OTHER"},
	}
	for _, tc := range cases {
		got, err := v.StatementKind(tc.sql)
		if err != nil {
			t.Fatalf("%s: %v", tc.sql, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.sql, got, tc.want)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	v := New()
	for _, sql := range []string{"SELEC * FROM t0", "SELECT 1; SELECT 2", ""} {
		if err := v.Validate(sql); err == nil {
			t.Fatalf("expected error for %q", sql)
		}
	}
}
