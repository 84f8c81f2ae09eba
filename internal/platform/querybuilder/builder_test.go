package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("teams").
		Where(Eq("league_id", "l1"), IsNull("deleted_at")).
		OrderBy("name", "id").
		Limit(50).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM teams WHERE league_id = $1 AND deleted_at IS NULL ORDER BY name, id LIMIT 50"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "l1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyIn(t *testing.T) {
	query, args, err := Select("id").
		From("games").
		Where(In("status", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM games WHERE 1=0"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_MultiRowWithSuffix(t *testing.T) {
	query, args, err := InsertInto("venues").
		Columns("id", "name").
		Values("v1", "North Hall").
		Values("v2", "South Hall").
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO venues (id, name) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != "v2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("venues").
		Columns("id", "name").
		Values("v1").
		ToSQL()
	if err == nil {
		t.Fatal("expected error for row width mismatch")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("seasons").
		Set("state", "ACTIVE").
		Set("updated_at", "2026-01-01").
		Where(Eq("id", "s1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE seasons SET state = $1, updated_at = $2 WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != "s1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("games").
		Where(Eq("season_id", "s1"), NotIn("status", []any{"IN_PROGRESS", "FINISHED", "SUSPENDED"})).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM games WHERE season_id = $1 AND status NOT IN ($2, $3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder_RequiresWhere(t *testing.T) {
	_, _, err := DeleteFrom("games").ToSQL()
	if err == nil {
		t.Fatal("expected error for delete without where")
	}
}
