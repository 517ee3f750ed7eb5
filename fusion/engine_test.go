package fusion_test

import (
	"bytes"
	"context"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"

	"github.com/katalvlaran/personafuse/catalog"
	"github.com/katalvlaran/personafuse/dataset"
	"github.com/katalvlaran/personafuse/fusion"
	"github.com/katalvlaran/personafuse/persona"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// SampleSuite runs the engine over the embedded sample catalogue.
type SampleSuite struct {
	suite.Suite
	cat    *catalog.Catalog
	engine *fusion.Engine
}

func TestSampleSuite(t *testing.T) {
	suite.Run(t, new(SampleSuite))
}

func (s *SampleSuite) SetupSuite() {
	cat, err := dataset.Sample()
	s.Require().NoError(err)
	s.cat = cat

	e, err := fusion.New(cat)
	s.Require().NoError(err)
	s.engine = e
}

func (s *SampleSuite) allNames() []string {
	var names []string
	for _, a := range s.engine.Arcana() {
		ps, err := s.engine.PersonasIn(a)
		s.Require().NoError(err)
		for _, p := range ps {
			names = append(names, p.Name)
		}
	}
	return names
}

// TestSymmetry checks Fuse(a, b) == Fuse(b, a) for every pair.
func (s *SampleSuite) TestSymmetry() {
	names := s.allNames()
	for _, a := range names {
		for _, b := range names {
			ab, errAB := s.engine.Fuse(a, b)
			ba, errBA := s.engine.Fuse(b, a)
			s.Equal(errAB == nil, errBA == nil, "%s x %s", a, b)
			s.Equal(ab.Name, ba.Name, "%s x %s", a, b)
		}
	}
}

// TestIndexSelfConsistency checks both directions between FusionsTo and Fuse.
func (s *SampleSuite) TestIndexSelfConsistency() {
	names := s.allNames()
	seen := map[[2]string]int{}

	for _, x := range names {
		pairs, err := s.engine.FusionsTo(x)
		if err != nil {
			s.Require().ErrorIs(err, fusion.ErrNotApplicable)
			continue
		}
		for _, p := range pairs {
			got, err := s.engine.Fuse(p.First.Name, p.Second.Name)
			s.Require().NoError(err)
			s.Equal(x, got.Name, "pair %s listed under %s", p, x)
			seen[p.Key()]++
		}
	}

	for i, a := range names {
		for _, b := range names[i+1:] {
			got, err := s.engine.Fuse(a, b)
			if err != nil {
				s.Require().ErrorIs(err, fusion.ErrNoFusion)
				continue
			}
			key := persona.Pair{First: persona.Entity{Name: a}, Second: persona.Entity{Name: b}}.Key()
			s.Equal(1, seen[key], "%s x %s = %s listed %d times", a, b, got.Name, seen[key])
		}
	}
}

// TestNoSpecialResults checks treasure and guillotine personas are never a
// two-persona result.
func (s *SampleSuite) TestNoSpecialResults() {
	for _, name := range s.allNames() {
		related, err := s.engine.RelatedFusions(name)
		s.Require().NoError(err)
		for _, f := range related {
			s.False(f.Result.Kind.IsSpecialResult(), "%s x %s = %s", name, f.Partner.Name, f.Result.Name)
		}
	}
}

func (s *SampleSuite) TestVerify() {
	s.Require().NoError(s.engine.Verify(context.Background(), 4))
	s.Require().NoError(s.engine.Verify(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Require().ErrorIs(s.engine.Verify(ctx, 2), context.Canceled)
}

func (s *SampleSuite) TestKnownFusions() {
	cases := []struct{ a, b, want string }{
		{"Arsene", "Pixie", "Silky"},     // Fool x Lovers = Priestess, ceiling from 2
		{"Arsene", "Legion", "Izanagi"},  // same arcana, exact match on a DLC persona
		{"Regent", "Arsene", "Obariyon"}, // treasure shift +1 in Fool
		{"Regent", "Legion", "Decarabia"},
		{"Alice", "Pixie", "Oberon"}, // guillotine persona as ingredient
	}
	for _, tc := range cases {
		got, err := s.engine.Fuse(tc.a, tc.b)
		s.Require().NoError(err, "%s x %s", tc.a, tc.b)
		s.Equal(tc.want, got.Name, "%s x %s", tc.a, tc.b)
	}
}

func (s *SampleSuite) TestNoFusion() {
	for _, pair := range [][2]string{
		{"Regent", "Decarabia"}, // shift past the end of Fool
		{"Regent", "Eligor"},    // no Emperor shift
		{"Jack Frost", "Mokoi"}, // Magician x Death is incompatible
		{"Pixie", "Pixie"},
	} {
		_, err := s.engine.Fuse(pair[0], pair[1])
		s.Require().ErrorIs(err, fusion.ErrNoFusion, "%s x %s", pair[0], pair[1])
	}
}

func (s *SampleSuite) TestNotFoundVersusNotApplicable() {
	_, err := s.engine.Persona("Satanael")
	s.Require().ErrorIs(err, fusion.ErrPersonaNotFound)
	_, err = s.engine.PersonasIn("Star")
	s.Require().ErrorIs(err, fusion.ErrArcanaNotFound)
	_, err = s.engine.FusionsTo("Satanael")
	s.Require().ErrorIs(err, fusion.ErrPersonaNotFound)
	_, err = s.engine.Fuse("Pixie", "Satanael")
	s.Require().ErrorIs(err, fusion.ErrPersonaNotFound)
	_, err = s.engine.RelatedFusions("Satanael")
	s.Require().ErrorIs(err, fusion.ErrPersonaNotFound)
	_, err = s.engine.SpecialRecipe("Satanael")
	s.Require().ErrorIs(err, fusion.ErrPersonaNotFound)
	_, err = s.engine.Results("Satanael")
	s.Require().ErrorIs(err, fusion.ErrPersonaNotFound)

	_, err = s.engine.FusionsTo("Alice")
	s.Require().ErrorIs(err, fusion.ErrNotApplicable)
	_, err = s.engine.FusionsTo("Regent")
	s.Require().ErrorIs(err, fusion.ErrNotApplicable)
	_, err = s.engine.SpecialRecipe("Pixie")
	s.Require().ErrorIs(err, fusion.ErrNotApplicable)

	recipe, err := s.engine.SpecialRecipe("Alice")
	s.Require().NoError(err)
	s.Equal([]string{"Nebiros", "Pixie", "Queen Mab", "Narcissus"}, recipe)
}

func (s *SampleSuite) TestReturnedValuesAreCopies() {
	p, err := s.engine.Persona("Alice")
	s.Require().NoError(err)
	p.Ingredients[0] = "tampered"
	p.Level = 1

	recipe, err := s.engine.SpecialRecipe("Alice")
	s.Require().NoError(err)
	s.Equal("Nebiros", recipe[0])
	recipe[1] = "tampered"

	again, err := s.engine.Persona("Alice")
	s.Require().NoError(err)
	s.Equal(79, again.Level)
	s.Equal([]string{"Nebiros", "Pixie", "Queen Mab", "Narcissus"}, again.Ingredients)

	ps, err := s.engine.PersonasIn("Lovers")
	s.Require().NoError(err)
	ps[0].Name = "tampered"
	ps, err = s.engine.PersonasIn("Lovers")
	s.Require().NoError(err)
	s.Equal("Pixie", ps[0].Name)

	arcana := s.engine.Arcana()
	arcana[0] = "tampered"
	s.Equal("Fool", s.engine.Arcana()[0])
}

func (s *SampleSuite) TestRelatedFusionsAndResults() {
	related, err := s.engine.RelatedFusions("Regent")
	s.Require().NoError(err)

	partners := make([]string, len(related))
	results := map[string]struct{}{}
	for i, f := range related {
		partners[i] = f.Partner.Name
		results[f.Result.Name] = struct{}{}
		got, err := s.engine.Fuse("Regent", f.Partner.Name)
		s.Require().NoError(err)
		s.Equal(f.Result.Name, got.Name)
	}
	s.True(sort.StringsAreSorted(partners))
	s.Contains(partners, "Arsene")
	s.NotContains(partners, "Decarabia")

	distinct, err := s.engine.Results("Regent")
	s.Require().NoError(err)
	s.Len(distinct, len(results))
	s.True(sort.StringsAreSorted(distinct))
	s.Contains(distinct, "Obariyon")
}

func (s *SampleSuite) TestStats() {
	st := s.engine.Stats()
	s.Equal(26, st.Personas)
	s.Equal(6, st.Arcana)
	s.Positive(st.Fusions)
	s.Equal(2*st.Fusions, st.Edges)
	s.LessOrEqual(st.Results, st.Personas)
}

// TestWithoutDLC: once Izanagi is filtered out, Arsene x Legion floors to
// Obariyon instead.
func (s *SampleSuite) TestWithoutDLC() {
	filtered, err := s.cat.WithoutDLC()
	s.Require().NoError(err)
	e, err := fusion.New(filtered)
	s.Require().NoError(err)

	got, err := e.Fuse("Arsene", "Legion")
	s.Require().NoError(err)
	s.Equal("Obariyon", got.Name)

	_, err = e.Persona("Izanagi")
	s.Require().ErrorIs(err, fusion.ErrPersonaNotFound)
}

// index flattens FusionsTo for every persona into result → sorted pair keys.
func index(t *testing.T, e *fusion.Engine) map[string][][2]string {
	t.Helper()
	out := map[string][][2]string{}
	for _, a := range e.Arcana() {
		ps, err := e.PersonasIn(a)
		require.NoError(t, err)
		for _, p := range ps {
			pairs, err := e.FusionsTo(p.Name)
			if err != nil {
				continue
			}
			keys := make([][2]string, len(pairs))
			for i, pair := range pairs {
				keys[i] = pair.Key()
			}
			sort.Slice(keys, func(i, j int) bool {
				if keys[i][0] != keys[j][0] {
					return keys[i][0] < keys[j][0]
				}
				return keys[i][1] < keys[j][1]
			})
			out[p.Name] = keys
		}
	}
	return out
}

func TestConstruction_Idempotent(t *testing.T) {
	cat, err := dataset.Sample()
	require.NoError(t, err)

	first, err := fusion.New(cat)
	require.NoError(t, err)
	second, err := fusion.New(cat)
	require.NoError(t, err)

	if diff := cmp.Diff(index(t, first), index(t, second)); diff != "" {
		t.Errorf("rebuild changed the index (-first +second):\n%s", diff)
	}
}

func TestConstruction_ArcanaOrderIndependent(t *testing.T) {
	cat, err := dataset.Sample()
	require.NoError(t, err)

	names := cat.ArcanaNames()
	reversed := make([]*catalog.Arcana, 0, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		a, _ := cat.Arcanum(names[i])
		reversed = append(reversed, catalog.NewArcana(a.Name, a.Personas))
	}
	other, err := catalog.New(reversed, cat.Compatibilities(), cat.Treasure())
	require.NoError(t, err)

	forward, err := fusion.New(cat)
	require.NoError(t, err)
	backward, err := fusion.New(other)
	require.NoError(t, err)

	if diff := cmp.Diff(index(t, forward), index(t, backward)); diff != "" {
		t.Errorf("arcana order changed the derivations (-forward +backward):\n%s", diff)
	}
}

func TestWithLogger(t *testing.T) {
	cat, err := dataset.Sample()
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err = fusion.New(cat, fusion.WithLogger(logger), fusion.WithLogger(nil))
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, `"msg":"fusion table built"`)
	require.Contains(t, out, `"component":"fusion"`)
	require.Contains(t, out, `"msg":"incompatible arcana"`)
	require.Contains(t, out, `"msg":"arcana pair fused"`)
}

func TestConcurrentReaders(t *testing.T) {
	cat, err := dataset.Sample()
	require.NoError(t, err)
	e, err := fusion.New(cat)
	require.NoError(t, err)

	const readers = 32
	var wg sync.WaitGroup
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := e.Fuse("Arsene", "Pixie")
				if err != nil || got.Name != "Silky" {
					t.Errorf("Fuse = %v, %v", got.Name, err)
					return
				}
				if _, err := e.FusionsTo("Mokoi"); err != nil {
					t.Errorf("FusionsTo: %v", err)
					return
				}
				if _, err := e.RelatedFusions("Regent"); err != nil {
					t.Errorf("RelatedFusions: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
