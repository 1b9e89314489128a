package strategy

import (
	"Pressroom/internal/api/config"
	"Pressroom/internal/model"
	"Pressroom/internal/pkg/testkit"
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

var errUnavailable = errors.New("catalog unavailable")

func ids(cands []ScoredCandidate) []uint64 {
	out := make([]uint64, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.ArticleID)
	}
	return out
}

func fixedNow() time.Time {
	return testkit.Epoch.Add(48 * time.Hour)
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"":              KindHot,
		"hot":           KindHot,
		"similar":       KindSimilar,
		"related":       KindRelated,
		"user":          KindUser,
		"collaborative": KindCollaborative,
		"random":        KindHot,
	}
	for in, want := range tests {
		if got := ParseKind(in); got != want {
			t.Errorf("ParseKind(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHotOrdersByEngagement(t *testing.T) {
	catalog := testkit.NewCatalog(
		testkit.NewArticle(1, 1, "A", testkit.WithCounters(100, 5, 2)),
		testkit.NewArticle(2, 1, "B", testkit.WithCounters(10, 50, 0)),
		testkit.NewArticle(3, 1, "draft", testkit.WithCounters(10000, 0, 0), testkit.WithStatus(model.ArticleStatusDraft)),
	)
	hot := NewHot(catalog, testkit.NewCache(), config.DefaultRecommendConfig())

	got, err := hot.Score(context.Background(), &Request{}, 10)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []uint64{2, 1}) {
		t.Fatalf("order = %v, want [2 1]", ids(got))
	}
	if got[0].Score != 105 {
		t.Errorf("score(B) = %v, want 105", got[0].Score)
	}
	if got[0].Strategy != KindHot {
		t.Errorf("strategy = %q", got[0].Strategy)
	}
}

func TestHotServedFromCacheUntilTTL(t *testing.T) {
	catalog := testkit.NewCatalog(
		testkit.NewArticle(1, 1, "A", testkit.WithCounters(100, 0, 0)),
		testkit.NewArticle(2, 1, "B", testkit.WithCounters(50, 0, 0)),
	)
	cache := testkit.NewCache()
	now := time.Now()
	cache.Now = func() time.Time { return now }
	hot := NewHot(catalog, cache, config.DefaultRecommendConfig())
	ctx := context.Background()

	first, err := hot.Score(ctx, &Request{}, 5)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	catalog.Add(testkit.NewArticle(3, 1, "C", testkit.WithCounters(1000, 0, 0)))
	second, err := hot.Score(ctx, &Request{}, 5)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached result changed: %v vs %v", first, second)
	}
	if n := catalog.Calls("ListArticles"); n != 1 {
		t.Fatalf("ListArticles calls = %d, want 1", n)
	}

	now = now.Add(31 * time.Minute)
	third, err := hot.Score(ctx, &Request{}, 5)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !reflect.DeepEqual(ids(third), []uint64{3, 1, 2}) {
		t.Fatalf("after ttl = %v, want [3 1 2]", ids(third))
	}
}

func TestHotCacheFailureStillScores(t *testing.T) {
	catalog := testkit.NewCatalog(testkit.NewArticle(1, 1, "A", testkit.WithCounters(1, 0, 0)))
	cache := testkit.NewCache()
	cache.Fail("Get", errors.New("redis down"))
	cache.Fail("Set", errors.New("redis down"))

	got, err := NewHot(catalog, cache, config.DefaultRecommendConfig()).Score(context.Background(), &Request{}, 3)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []uint64{1}) {
		t.Fatalf("got %v", ids(got))
	}
}

func TestHotSnapshotReadsCacheOnly(t *testing.T) {
	catalog := testkit.NewCatalog(
		testkit.NewArticle(1, 1, "A", testkit.WithCounters(100, 0, 0)),
		testkit.NewArticle(2, 1, "B", testkit.WithCounters(50, 0, 0)),
	)
	hot := NewHot(catalog, testkit.NewCache(), config.DefaultRecommendConfig())
	ctx := context.Background()

	if _, ok := hot.Snapshot(ctx, 5); ok {
		t.Fatal("snapshot before any score")
	}
	if _, err := hot.Score(ctx, &Request{}, 5); err != nil {
		t.Fatalf("Score: %v", err)
	}
	catalog.Fail("ListArticles", errUnavailable)

	got, ok := hot.Snapshot(ctx, 7, 5)
	if !ok || len(got) != 2 || got[0].ID != 1 || got[0].Title != "A" {
		t.Fatalf("snapshot = %v, %v", got, ok)
	}
	if n := catalog.Calls("ListArticles"); n != 1 {
		t.Fatalf("ListArticles calls = %d, want 1", n)
	}
}

func TestHotEmptyCatalog(t *testing.T) {
	got, err := NewHot(testkit.NewCatalog(), testkit.NewCache(), config.DefaultRecommendConfig()).
		Score(context.Background(), &Request{}, 10)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}

func TestSimilarRanking(t *testing.T) {
	seed := testkit.NewArticle(1, 10, "Kafka 消费者 rebalance")
	catalog := testkit.NewCatalog(
		seed,
		// 同类目, 1 个共同关键词, 同日发布: 50 + 10 + 20
		testkit.NewArticle(2, 10, "Kafka 入门", testkit.WithCounters(5, 0, 0)),
		// 同类目, 无共同关键词, 相隔 15 天: 50 + 0 + 10
		testkit.NewArticle(3, 10, "Redis 集群", testkit.WithCounters(500, 0, 0), testkit.CreatedAt(testkit.Epoch.Add(-15*24*time.Hour))),
		// 其他类目, 2 个共同关键词, 相隔 60 天: 0 + 20 + 0
		testkit.NewArticle(4, 20, "kafka rebalance 调优", testkit.WithCounters(900, 0, 0), testkit.CreatedAt(testkit.Epoch.Add(60*24*time.Hour))),
	)

	got, err := NewSimilar(catalog).Score(context.Background(), &Request{SeedArticleID: 1}, 5)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []uint64{2, 3, 4}) {
		t.Fatalf("order = %v, want [2 3 4]", ids(got))
	}
	wantScores := []float64{80, 60, 20}
	for i, c := range got {
		if diff := c.Score - wantScores[i]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("score[%d] = %v, want %v", i, c.Score, wantScores[i])
		}
	}
}

func TestSimilarPrefersSameCategoryPool(t *testing.T) {
	seed := testkit.NewArticle(1, 10, "seed")
	catalog := testkit.NewCatalog(seed,
		testkit.NewArticle(2, 10, "a", testkit.WithCounters(1, 0, 0)),
		testkit.NewArticle(3, 10, "b", testkit.WithCounters(2, 0, 0)),
		testkit.NewArticle(4, 20, "c", testkit.WithCounters(1000, 0, 0)),
	)

	// 取 1 条时候选池为 2 条，同类目已满足，不会扫描其他类目
	got, err := NewSimilar(catalog).Score(context.Background(), &Request{SeedArticleID: 1}, 1)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []uint64{3}) {
		t.Fatalf("got %v, want [3]", ids(got))
	}
	if n := catalog.Calls("ListArticles"); n != 1 {
		t.Fatalf("ListArticles calls = %d, want 1", n)
	}
}

func TestSimilarPropagatesCatalogFailure(t *testing.T) {
	catalog := testkit.NewCatalog(testkit.NewArticle(1, 10, "seed"))
	catalog.Fail("GetArticle", errUnavailable)

	if _, err := NewSimilar(catalog).Score(context.Background(), &Request{SeedArticleID: 1}, 5); !errors.Is(err, errUnavailable) {
		t.Fatalf("err = %v, want %v", err, errUnavailable)
	}
}

func TestSimilarUnknownSeed(t *testing.T) {
	got, err := NewSimilar(testkit.NewCatalog()).Score(context.Background(), &Request{SeedArticleID: 99}, 5)
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v, %v; want empty, nil", got, err)
	}
}

func TestRelatedSharedTagsOutweighViews(t *testing.T) {
	catalog := testkit.NewCatalog(
		testkit.NewArticle(1, 10, "seed", testkit.WithTags(1, 2)),
		testkit.NewArticle(2, 10, "X", testkit.WithTags(1, 2), testkit.WithCounters(5, 0, 0)),
		testkit.NewArticle(3, 10, "Y", testkit.WithTags(1), testkit.WithCounters(50, 0, 0)),
		testkit.NewArticle(4, 10, "Z", testkit.WithTags(3), testkit.WithCounters(5000, 0, 0)),
	)

	got, err := NewRelated(catalog, config.DefaultRecommendConfig()).Score(context.Background(), &Request{SeedArticleID: 1}, 10)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []uint64{2, 3}) {
		t.Fatalf("order = %v, want [2 3]", ids(got))
	}
}

func TestRelatedWithoutTagsUsesCategoryRecency(t *testing.T) {
	catalog := testkit.NewCatalog(
		testkit.NewArticle(1, 10, "seed"),
		testkit.NewArticle(2, 10, "old", testkit.CreatedAt(testkit.Epoch.Add(-48*time.Hour))),
		testkit.NewArticle(3, 10, "new", testkit.CreatedAt(testkit.Epoch.Add(24*time.Hour))),
		testkit.NewArticle(4, 20, "other", testkit.CreatedAt(testkit.Epoch.Add(72*time.Hour))),
	)

	got, err := NewRelated(catalog, config.DefaultRecommendConfig()).Score(context.Background(), &Request{SeedArticleID: 1}, 10)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []uint64{3, 2}) {
		t.Fatalf("order = %v, want [3 2]", ids(got))
	}
}

func TestPreferenceColdStartIsHot(t *testing.T) {
	catalog := testkit.NewCatalog(
		testkit.NewArticle(1, 10, "a", testkit.WithCounters(1, 0, 0)),
		testkit.NewArticle(2, 20, "b", testkit.WithCounters(9, 0, 0)),
	)
	cfg := config.DefaultRecommendConfig()
	hot := NewHot(catalog, testkit.NewCache(), cfg)
	pref := NewPreference(catalog, testkit.NewBehaviorLog(), hot, cfg)

	want, _ := hot.Score(context.Background(), &Request{}, 5)
	got, err := pref.Score(context.Background(), &Request{UserID: 7, Profile: &model.UserProfile{UserID: 7}}, 5)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("cold start = %v, want hot %v", got, want)
	}
}

func TestPreferenceExcludesRecentViews(t *testing.T) {
	catalog := testkit.NewCatalog(
		testkit.NewArticle(1, 10, "read yesterday", testkit.CreatedAt(testkit.Epoch.Add(3*time.Hour))),
		testkit.NewArticle(2, 10, "fresh", testkit.CreatedAt(testkit.Epoch.Add(2*time.Hour))),
		testkit.NewArticle(3, 20, "older interest", testkit.CreatedAt(testkit.Epoch.Add(time.Hour))),
		testkit.NewArticle(4, 30, "not interested", testkit.CreatedAt(testkit.Epoch.Add(4*time.Hour))),
		testkit.NewArticle(5, 40, "fourth interest", testkit.CreatedAt(testkit.Epoch.Add(5*time.Hour))),
	)
	behavior := testkit.NewBehaviorLog()
	behavior.Seed(testkit.View(7, 1, fixedNow().Add(-24*time.Hour)))

	cfg := config.DefaultRecommendConfig()
	pref := NewPreference(catalog, behavior, NewHot(catalog, testkit.NewCache(), cfg), cfg)
	pref.now = fixedNow

	profile := &model.UserProfile{
		UserID:           7,
		Interests:        []uint64{10, 20, 50, 40},
		RecentCategories: []uint64{10, 20, 50},
	}
	got, err := pref.Score(context.Background(), &Request{UserID: 7, Profile: profile}, 10)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []uint64{2, 3}) {
		t.Fatalf("got %v, want [2 3]", ids(got))
	}
	if got[0].Strategy != KindUser {
		t.Errorf("strategy = %q", got[0].Strategy)
	}
}

func newCollaborative(catalog *testkit.Catalog, behavior *testkit.BehaviorLog) (*Collaborative, *Hot) {
	cfg := config.DefaultRecommendConfig()
	hot := NewHot(catalog, testkit.NewCache(), cfg)
	c := NewCollaborative(catalog, behavior, hot, cfg)
	c.now = fixedNow
	return c, hot
}

func TestCollaborativeColdStartEqualsHot(t *testing.T) {
	catalog := testkit.NewCatalog(
		testkit.NewArticle(1, 10, "a", testkit.WithCounters(10, 0, 0)),
		testkit.NewArticle(2, 10, "b", testkit.WithCounters(20, 0, 0)),
	)
	collab, hot := newCollaborative(catalog, testkit.NewBehaviorLog())

	want, _ := hot.Score(context.Background(), &Request{}, 10)
	got, err := collab.Score(context.Background(), &Request{UserID: 1}, 10)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want hot %v", got, want)
	}
}

func TestCollaborativeRanksByNeighborCount(t *testing.T) {
	var articles []*model.Article
	for id := uint64(1); id <= 7; id++ {
		articles = append(articles, testkit.NewArticle(id, 10, "a"))
	}
	articles[6].Status = model.ArticleStatusOffline
	catalog := testkit.NewCatalog(articles...)

	at := testkit.Epoch
	behavior := testkit.NewBehaviorLog()
	behavior.Seed(
		testkit.View(1, 1, at), testkit.View(1, 2, at), testkit.View(1, 3, at),
		testkit.View(2, 1, at), testkit.View(2, 2, at), testkit.View(2, 4, at), testkit.View(2, 7, at),
		testkit.View(3, 1, at), testkit.View(3, 5, at),
		testkit.View(4, 2, at), testkit.View(4, 3, at), testkit.View(4, 4, at), testkit.View(4, 6, at),
	)
	collab, _ := newCollaborative(catalog, behavior)

	neighbors, err := collab.Neighbors(context.Background(), 1, []uint64{1, 2, 3}, fixedNow().Add(-30*24*time.Hour))
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	wantNeighbors := []Neighbor{{UserID: 2, CommonViews: 2}, {UserID: 4, CommonViews: 2}}
	if !reflect.DeepEqual(neighbors, wantNeighbors) {
		t.Fatalf("neighbors = %v, want %v", neighbors, wantNeighbors)
	}

	got, err := collab.Score(context.Background(), &Request{UserID: 1}, 10)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	// 4 被两个邻居看过; 5 来自非邻居; 7 已下线
	if !reflect.DeepEqual(ids(got), []uint64{4, 6}) {
		t.Fatalf("got %v, want [4 6]", ids(got))
	}
	if got[0].Score != 2 || got[0].Strategy != KindCollaborative {
		t.Errorf("top = %+v", got[0])
	}
}

func TestCollaborativeWithoutNeighborsFallsBackToHot(t *testing.T) {
	catalog := testkit.NewCatalog(
		testkit.NewArticle(1, 10, "a", testkit.WithCounters(10, 0, 0)),
		testkit.NewArticle(2, 10, "b", testkit.WithCounters(20, 0, 0)),
	)
	behavior := testkit.NewBehaviorLog()
	behavior.Seed(testkit.View(1, 1, testkit.Epoch), testkit.View(2, 1, testkit.Epoch))
	collab, hot := newCollaborative(catalog, behavior)

	want, _ := hot.Score(context.Background(), &Request{}, 10)
	got, err := collab.Score(context.Background(), &Request{UserID: 1}, 10)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want hot %v", got, want)
	}
}

func TestCollaborativePropagatesBehaviorFailure(t *testing.T) {
	behavior := testkit.NewBehaviorLog()
	behavior.Fail("ListViews", errUnavailable)
	collab, _ := newCollaborative(testkit.NewCatalog(), behavior)

	if _, err := collab.Score(context.Background(), &Request{UserID: 1}, 10); !errors.Is(err, errUnavailable) {
		t.Fatalf("err = %v, want %v", err, errUnavailable)
	}
}
