package wire

import (
	"Pressroom/internal/api/config"
	"Pressroom/internal/pkg/consts"
	"Pressroom/internal/pkg/testkit"
	"Pressroom/internal/service"
	"context"
	"slices"
	"testing"
)

func articleIDs(t *testing.T, svcs *Services, req *service.RecommendRequest) []uint64 {
	t.Helper()
	articles, err := svcs.Recommend.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	ids := make([]uint64, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestBuildServicesRegistersStrategies(t *testing.T) {
	catalog := testkit.NewCatalog(
		testkit.NewArticle(1, 1, "seed", testkit.WithTags(1), testkit.WithCounters(1, 0, 0)),
		testkit.NewArticle(2, 2, "tagged", testkit.WithTags(1), testkit.WithCounters(1, 0, 0)),
		testkit.NewArticle(3, 3, "popular", testkit.WithCounters(1000, 0, 0)),
	)
	cache := testkit.NewCache()
	svcs := BuildServices(catalog, testkit.NewBehaviorLog(), cache, config.DefaultRecommendConfig())
	defer svcs.Recommend.Wait()

	if got := articleIDs(t, svcs, &service.RecommendRequest{Strategy: "hot", Limit: 2}); !slices.Equal(got, []uint64{3, 1}) {
		t.Fatalf("hot = %v, want [3 1]", got)
	}
	got := articleIDs(t, svcs, &service.RecommendRequest{Strategy: "related", SeedArticleID: 1, Limit: 2})
	if !slices.Equal(got, []uint64{2, 3}) {
		t.Fatalf("related = %v, want [2 3]", got)
	}
}

func TestBuildServicesWarmUsesConfiguredSizes(t *testing.T) {
	cfg := config.DefaultRecommendConfig()
	cfg.WarmSizes = []int{5}
	cache := testkit.NewCache()
	svcs := BuildServices(testkit.NewCatalog(testkit.NewArticle(1, 1, "a")), testkit.NewBehaviorLog(), cache, cfg)

	if err := svcs.HotList.Warm(context.Background()); err != nil {
		t.Fatalf("warm: %v", err)
	}
	if !cache.Has(consts.HotListKey + "5") {
		t.Fatal("hot list for size 5 not cached")
	}
}
