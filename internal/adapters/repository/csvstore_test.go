package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/courtside/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const header = "PLAYER,TEAM,ORTG,EFG,TS,3P,2P,AST,TO,STL,BLK,USG,BPM\n"

func writeTable(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestParse_Basic(t *testing.T) {
	body := header +
		"Ada Lane,UC Santa Barbara,118.2,55.1,58.3,36.0,52.1,3.1,12.0,1.9,0.8,24.5,6.2\n" +
		"Ben Cole,Hawaii,101.0,48.0,51.0,30.0,47.5,1.2,15.1,1.1,2.0,19.0,-1.5\n"

	tbl, err := Parse(strings.NewReader(body), ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 players, got %d", tbl.Len())
	}
	if tbl.Dropped != 0 {
		t.Errorf("expected 0 dropped, got %d", tbl.Dropped)
	}
	p := tbl.Players[1]
	if p.Name != "Ben Cole" || p.Team != "Hawaii" || p.Row != 1 {
		t.Errorf("unexpected identity %+v", p)
	}
	if p.BPM != -1.5 || p.ThreeP != 30.0 || p.TwoP != 47.5 {
		t.Errorf("unexpected metrics %+v", p)
	}
	if len(tbl.Teams) != 2 || tbl.Teams[0] != "UC Santa Barbara" || tbl.Teams[1] != "Hawaii" {
		t.Errorf("unexpected teams %v", tbl.Teams)
	}
}

func TestParse_HeaderIsCaseInsensitiveAndIgnoresExtraColumns(t *testing.T) {
	body := "\ufeff player , Team,Year,ortg,efg,ts,3p,2p,ast,to,stl,blk,usg,bpm\n" +
		"Ada Lane,UC Irvine,2021,110,50,55,33,50,2,10,1,1,20,3\n"

	tbl, err := Parse(strings.NewReader(body), ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != 1 || tbl.Players[0].ORTG != 110 || tbl.Players[0].BPM != 3 {
		t.Errorf("unexpected players %+v", tbl.Players)
	}
}

func TestParse_DropsRowsWithMissingValues(t *testing.T) {
	body := header +
		"Ada Lane,UC Davis,110,50,55,33,50,2,10,1,1,20,3\n" +
		"Ben Cole,Cal Poly,NA,50,55,33,50,2,10,1,1,20,3\n" +
		"Cy Diaz,Cal Poly,110,50,,33,50,2,10,1,1,20,3\n" +
		",UC Davis,110,50,55,33,50,2,10,1,1,20,3\n" +
		"Dee Fox,Long Beach State,110,abc,55,33,50,2,10,1,1,20,3\n" +
		"Eli Gray,Long Beach State,105,51%,54,31,49,2,11,1,1,21,NaN\n" +
		"Fay Hill,UC Davis,99,47,50,30\n" +
		"Gus Ives,UC Davis,101,52.5%,56,31,49,2,11,1,1,21,1\n"

	tbl, err := Parse(strings.NewReader(body), ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 players, got %d: %+v", tbl.Len(), tbl.Players)
	}
	if tbl.Dropped != 6 {
		t.Errorf("expected 6 dropped, got %d", tbl.Dropped)
	}
	if tbl.Players[1].Name != "Gus Ives" || tbl.Players[1].EFG != 52.5 || tbl.Players[1].Row != 7 {
		t.Errorf("unexpected second player %+v", tbl.Players[1])
	}
	// Teams seen only on dropped rows are still listed.
	want := []string{"UC Davis", "Cal Poly", "Long Beach State"}
	if strings.Join(tbl.Teams, "|") != strings.Join(want, "|") {
		t.Errorf("expected teams %v, got %v", want, tbl.Teams)
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse(strings.NewReader(""), ','); !errors.Is(err, ErrNoHeader) {
		t.Errorf("expected ErrNoHeader, got %v", err)
	}

	_, err := Parse(strings.NewReader("PLAYER,TEAM,ORTG\nA,B,1\n"), ',')
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	if !strings.Contains(err.Error(), "BPM") || !strings.Contains(err.Error(), "USG") {
		t.Errorf("error should name missing columns: %v", err)
	}
}

func TestCSVStore_TabSeparated(t *testing.T) {
	dir := t.TempDir()
	body := strings.ReplaceAll(header, ",", "\t") +
		"Ada Lane\tCSUN\t110\t50\t55\t33\t50\t2\t10\t1\t1\t20\t3\n"
	path := writeTable(t, dir, "players.tsv", body)

	tbl, err := NewCSVStore(path).Current(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != 1 || tbl.Players[0].Team != "CSUN" {
		t.Errorf("unexpected players %+v", tbl.Players)
	}
}

func TestCSVStore_Memoizes(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := writeTable(t, dir, "players.csv", header+"Ada Lane,UC Riverside,110,50,55,33,50,2,10,1,1,20,3\n")

	loadedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewCSVStore(path, WithClock(func() time.Time { return loadedAt }))

	first, err := store.Current(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Source != path || !first.LoadedAt.Equal(loadedAt) {
		t.Errorf("unexpected table metadata: source=%s loadedAt=%s", first.Source, first.LoadedAt)
	}

	second, err := store.Current(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected the cached table to be returned for an unchanged file")
	}

	// Rewrite with a different size and a later mtime.
	writeTable(t, dir, "players.csv", header+
		"Ada Lane,UC Riverside,110,50,55,33,50,2,10,1,1,20,3\n"+
		"Ben Cole,UC Riverside,100,45,50,30,45,1,12,1,1,18,-2\n")
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	third, err := store.Current(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third == first || third.Len() != 2 {
		t.Errorf("expected a reloaded table with 2 players, got %d", third.Len())
	}
}

func TestCSVStore_FailedReloadKeepsCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := writeTable(t, dir, "players.csv", header+"Ada Lane,Hawaii,110,50,55,33,50,2,10,1,1,20,3\n")
	store := NewCSVStore(path)

	good, err := store.Current(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	writeTable(t, dir, "players.csv", "PLAYER,TEAM\nAda Lane,Hawaii\n")
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if _, err := store.Current(ctx); !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}

	store.mu.Lock()
	cached := store.table
	store.mu.Unlock()
	if cached != good {
		t.Error("a failed reload must not replace the cached table")
	}
}

func TestCSVStore_MissingFile(t *testing.T) {
	store := NewCSVStore(filepath.Join(t.TempDir(), "absent.csv"))
	if _, err := store.Current(context.Background()); !errors.Is(err, ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
}

func TestCSVStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewCSVStore("unused.csv")
	if _, err := store.Current(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWithDelimiter(t *testing.T) {
	s := NewCSVStore("players.txt", WithDelimiter(';'))
	if s.comma != ';' {
		t.Errorf("expected ';', got %q", s.comma)
	}
	s = NewCSVStore("players.tsv", WithDelimiter('"'))
	if s.comma != '\t' {
		t.Errorf("invalid delimiter should be ignored, got %q", s.comma)
	}
}
