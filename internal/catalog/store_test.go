package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zebaish/internal/models"
	"zebaish/internal/persist"
)

type failingSource struct{}

func (failingSource) Fetch(context.Context) ([]models.Product, error) {
	return nil, errors.New("network down")
}

type staticSource []models.Product

func (s staticSource) Fetch(context.Context) ([]models.Product, error) {
	return s, nil
}

// unreachableSource returns an HTTPSource pointing at a server that has
// already been shut down.
func unreachableSource(t *testing.T) *HTTPSource {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/products.json"
	srv.Close()
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: time.Second}}
}

func persistedCatalog(t *testing.T, b persist.Backend) []models.Product {
	t.Helper()
	var got []models.Product
	require.NoError(t, persist.LoadJSON(context.Background(), b, persist.CatalogKey, &got))
	return got
}

func TestLoadFromHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[{"id":7,"name":"Pearl Ring","price":900,"category":"ring","stock":2}]}`))
	}))
	defer srv.Close()

	b := persist.NewMemory()
	s := NewStore(&HTTPSource{URL: srv.URL}, b)

	tier := s.Load(context.Background())
	assert.Equal(t, TierRemote, tier)
	require.Equal(t, 1, s.Len())

	p, ok := s.Find(7)
	require.True(t, ok)
	assert.Equal(t, "Pearl Ring", p.Name)

	// A remote load refreshes the persisted cache.
	assert.Equal(t, s.Products(), persistedCatalog(t, b))
}

func TestLoadFallsBackToCache(t *testing.T) {
	ctx := context.Background()
	b := persist.NewMemory()
	cached := []models.Product{{ID: 42, Name: "Cached Anklet", Category: "anklet"}}
	require.NoError(t, persist.SaveJSON(ctx, b, persist.CatalogKey, cached))

	s := NewStore(failingSource{}, b)
	assert.Equal(t, TierCache, s.Load(ctx))
	assert.Equal(t, cached, s.Products())
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	s := NewStore(unreachableSource(t), persist.NewMemory())

	assert.Equal(t, TierDefaults, s.Load(context.Background()))
	assert.Equal(t, DefaultProducts(), s.Products())
	assert.Equal(t, 5, s.Len())
}

func TestLoadRemoteFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"malformed document", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"products": [`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			s := NewStore(&HTTPSource{URL: srv.URL}, persist.NewMemory())
			assert.Equal(t, TierDefaults, s.Load(context.Background()))
		})
	}
}

func TestLoadUnreadableCacheUsesDefaults(t *testing.T) {
	ctx := context.Background()
	b := persist.NewMemory()
	require.NoError(t, b.Save(ctx, persist.CatalogKey, []byte("not json")))

	s := NewStore(nil, b)
	assert.Equal(t, TierDefaults, s.Load(ctx))
	assert.Equal(t, 5, s.Len())
}

func TestLoadDocumentWithoutProducts(t *testing.T) {
	s := NewStore(staticSource(nil), persist.NewMemory())
	// A nil slice from the source is still a successful remote load.
	assert.Equal(t, TierRemote, s.Load(context.Background()))
	assert.Equal(t, 0, s.Len())
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"other": true}`), 0o644))

	products, err := (&FileSource{Path: path}).Fetch(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)

	_, err = (&FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}).Fetch(context.Background())
	assert.Error(t, err)
}

func loadedStore(t *testing.T) (*Store, *persist.Memory) {
	t.Helper()
	b := persist.NewMemory()
	s := NewStore(staticSource(DefaultProducts()), b)
	require.Equal(t, TierRemote, s.Load(context.Background()))
	return s, b
}

func TestUpsertReplacesAllFields(t *testing.T) {
	ctx := context.Background()
	s, b := loadedStore(t)

	edited := models.Product{
		ID:          2,
		Name:        "Velvet Bangles (Set of 6)",
		Price:       700,
		Category:    "bangles",
		Image:       "data:image/jpeg;base64,AAAA",
		Description: "",
		Featured:    true,
		Stock:       0,
	}
	got := s.Upsert(ctx, edited)
	assert.Equal(t, edited, got)

	found, ok := s.Find(2)
	require.True(t, ok)
	assert.Equal(t, edited, found)
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, s.Products(), persistedCatalog(t, b))
}

func TestUpsertKeepsImageWhenMissing(t *testing.T) {
	ctx := context.Background()
	s, _ := loadedStore(t)
	before, _ := s.Find(3)

	s.Upsert(ctx, models.Product{ID: 3, Name: "Renamed Tikka", Price: 850, Category: "maangtikka", Stock: 4})

	after, _ := s.Find(3)
	assert.Equal(t, before.Image, after.Image)
	assert.Equal(t, "Renamed Tikka", after.Name)
	assert.False(t, after.Featured)
}

func TestUpsertAppendsWithFreshID(t *testing.T) {
	ctx := context.Background()
	s, b := loadedStore(t)
	fixed := time.UnixMilli(1_700_000_000_000)
	s.now = func() time.Time { return fixed }

	first := s.Upsert(ctx, models.Product{Name: "Kundan Ring", Price: 650, Category: "ring", Stock: 10})
	second := s.Upsert(ctx, models.Product{Name: "Kundan Bracelet", Price: 900, Category: "bracelet", Stock: 10})

	assert.Equal(t, fixed.UnixMilli(), first.ID)
	assert.Equal(t, fixed.UnixMilli()+1, second.ID, "ids must stay unique when the clock does not move")

	products := s.Products()
	require.Len(t, products, 7)
	assert.Equal(t, "Kundan Ring", products[5].Name)
	assert.Equal(t, "Kundan Bracelet", products[6].Name)
	assert.Len(t, persistedCatalog(t, b), 7)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s, b := loadedStore(t)

	s.Remove(ctx, 4)
	_, ok := s.Find(4)
	assert.False(t, ok)
	assert.Equal(t, 4, s.Len())

	s.Remove(ctx, 999)
	_, ok = s.Find(999)
	assert.False(t, ok)
	assert.Equal(t, 4, s.Len())

	for _, p := range persistedCatalog(t, b) {
		assert.NotEqual(t, int64(4), p.ID)
	}
}

func TestSearch(t *testing.T) {
	s, _ := loadedStore(t)

	got := s.Search("velvet")
	names := make([]string, 0, len(got))
	for _, p := range got {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "Classic Red Velvet Bangles")
	assert.NotContains(t, names, "Gold Thread Choker Necklace")

	// Category ids match too, ignoring case.
	got = s.Search("NECKLACE")
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)

	assert.Empty(t, s.Search("platinum"))
}

func TestSearchTwoProductCatalog(t *testing.T) {
	s := NewStore(staticSource([]models.Product{
		{ID: 1, Name: "Classic Red Velvet Bangles", Category: "bangles"},
		{ID: 2, Name: "Gold Thread Choker Necklace", Category: "necklace"},
	}), persist.NewMemory())
	s.Load(context.Background())

	got := s.Search("velvet")
	require.Len(t, got, 1)
	assert.Equal(t, "Classic Red Velvet Bangles", got[0].Name)
}

func TestFilterByCategory(t *testing.T) {
	s, _ := loadedStore(t)

	assert.Len(t, s.FilterByCategory(models.CategoryAll), 5)
	assert.Len(t, s.FilterByCategory(""), 5)

	got := s.FilterByCategory("earrings")
	require.Len(t, got, 1)
	assert.Equal(t, int64(5), got[0].ID)

	assert.Empty(t, s.FilterByCategory("anklet"))
}

func TestProductsIsACopy(t *testing.T) {
	s, _ := loadedStore(t)
	products := s.Products()
	products[0].Name = "mutated"

	p, _ := s.Find(1)
	assert.Equal(t, "Royal Bridal Necklace Set", p.Name)
}

func TestCategoryAccessors(t *testing.T) {
	s, _ := loadedStore(t)

	cats := s.Categories()
	require.Len(t, cats, 7)
	assert.Equal(t, "necklace", cats[0].ID)

	assert.Equal(t, "Maang Tikka", s.CategoryName("maangtikka"))
	assert.Equal(t, "anklet", s.CategoryName("anklet"))
}
