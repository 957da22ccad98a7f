package datasets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/symburst/internal/db"
	"github.com/ziadkadry99/symburst/internal/symbols"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func sampleDoc() *symbols.Document {
	return &symbols.Document{
		App: "blinky",
		Symbols: []symbols.Record{
			{Path: []string{"core"}, Obj: "main.o", Sym: "main", Type: symbols.TypeText, Size: 10, Index: 0},
			{Path: []string{"core"}, Obj: "main.o", Sym: "loop", Type: symbols.TypeText, Size: 20, Index: 2},
			{Path: nil, Obj: "startup.o", Sym: "vectors", Type: symbols.TypeData, Size: 4, Index: 3},
		},
		Malformed: []symbols.Malformed{{Index: 1, Sym: "broken", Reason: "size is not a number"}},
	}
}

type countingReporter struct {
	started, updates, finished int
}

func (r *countingReporter) Start(total int)    { r.started = total }
func (r *countingReporter) Update(int, string) { r.updates++ }
func (r *countingReporter) Finish()            { r.finished++ }

func TestSaveAndDocument(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	rep := &countingReporter{}
	ds, err := store.Save(ctx, sampleDoc(), "testdata/symbols.json", rep)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if ds.ID == "" {
		t.Fatal("expected generated ID")
	}
	if ds.RecordCount != 3 || ds.MalformedCount != 1 {
		t.Errorf("counts = %d/%d, want 3/1", ds.RecordCount, ds.MalformedCount)
	}
	if rep.started != 3 || rep.updates != 3 || rep.finished != 1 {
		t.Errorf("reporter = %+v", rep)
	}

	doc, err := store.Document(ctx, ds.ID)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	want := sampleDoc()
	if doc.App != want.App {
		t.Errorf("App = %q, want %q", doc.App, want.App)
	}
	if len(doc.Symbols) != len(want.Symbols) {
		t.Fatalf("got %d symbols, want %d", len(doc.Symbols), len(want.Symbols))
	}
	for i, rec := range doc.Symbols {
		w := want.Symbols[i]
		if rec.Sym != w.Sym || rec.Obj != w.Obj || rec.Type != w.Type || rec.Size != w.Size || rec.Index != w.Index {
			t.Errorf("symbol %d = %+v, want %+v", i, rec, w)
		}
		if len(rec.Path) != len(w.Path) {
			t.Errorf("symbol %d path = %v, want %v", i, rec.Path, w.Path)
		}
	}
	if len(doc.Malformed) != 1 || doc.Malformed[0].Sym != "broken" || doc.Malformed[0].Index != 1 {
		t.Errorf("Malformed = %+v", doc.Malformed)
	}
}

func TestCorruptMalformedColumn(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	ds, err := store.Save(ctx, sampleDoc(), "testdata/symbols.json", nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.db.ExecContext(ctx, `UPDATE datasets SET malformed = 'not json' WHERE id = ?`, ds.ID); err != nil {
		t.Fatalf("corrupting row: %v", err)
	}

	if _, err := store.Get(ctx, ds.ID); err == nil {
		t.Error("expected Get to fail on an undecodable malformed column")
	}
	if _, err := store.Document(ctx, ds.ID); err == nil {
		t.Error("expected Document to fail on an undecodable malformed column")
	}
	if _, err := store.List(ctx); err == nil {
		t.Error("expected List to fail on an undecodable malformed column")
	}
}

func TestGetNotFound(t *testing.T) {
	store := setupStore(t)
	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	_, err = store.Document(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound from Document, got %v", err)
	}
}

func TestListAndDelete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, sampleDoc(), "a.json", nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := store.Save(ctx, &symbols.Document{App: "other"}, "b.json", nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(list))
	}
	if list[0].ID != second.ID {
		t.Errorf("expected newest first, got %s", list[0].ID)
	}

	if err := store.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: expected ErrNotFound, got %v", err)
	}

	var count int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM symbols`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected symbols removed with dataset, %d left", count)
	}
}

func TestRoutes(t *testing.T) {
	store := setupStore(t)
	ds, err := store.Save(context.Background(), sampleDoc(), "a.json", nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var list []Dataset
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(list) != 1 || list[0].App != "blinky" {
		t.Errorf("list = %+v", list)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/datasets/"+ds.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/datasets/nope", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("get missing: expected 404, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/datasets/"+ds.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", w.Code)
	}
}
