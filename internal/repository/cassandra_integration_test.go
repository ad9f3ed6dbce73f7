package repository_test

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gocql/gocql"

	"github.com/tweet-discussion-api/internal/models"
	"github.com/tweet-discussion-api/internal/repository"
)

// cassandraSessions opens n independent sessions against CASSANDRA_TEST_HOSTS,
// each standing in for a separate discussion process.
func cassandraSessions(t *testing.T, n int) []*gocql.Session {
	t.Helper()
	hosts := os.Getenv("CASSANDRA_TEST_HOSTS")
	if hosts == "" {
		t.Skip("CASSANDRA_TEST_HOSTS not set")
	}
	keyspace := os.Getenv("CASSANDRA_TEST_KEYSPACE")
	if keyspace == "" {
		keyspace = "distcomp_test"
	}

	sessions := make([]*gocql.Session, 0, n)
	for i := 0; i < n; i++ {
		cluster := gocql.NewCluster(strings.Split(hosts, ",")...)
		cluster.Keyspace = keyspace
		cluster.Consistency = gocql.Quorum
		cluster.Timeout = 10 * time.Second
		session, err := cluster.CreateSession()
		if err != nil {
			t.Fatalf("failed to connect: %v", err)
		}
		t.Cleanup(session.Close)
		sessions = append(sessions, session)
	}
	return sessions
}

func TestIDCounterRepo_ConcurrentProcessesGetDistinctIDs(t *testing.T) {
	sessions := cassandraSessions(t, 4)
	name := "test_" + time.Now().Format("150405.000000")

	const perSession = 25
	var mu sync.Mutex
	seen := make(map[int64]bool)
	var wg sync.WaitGroup

	for _, s := range sessions {
		counter := repository.NewIDCounterRepo(s, 256)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perSession; i++ {
				id, err := counter.Next(context.Background(), name)
				if err != nil {
					t.Errorf("Next failed: %v", err)
					return
				}
				mu.Lock()
				if seen[id] {
					t.Errorf("id %d issued twice", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != len(sessions)*perSession {
		t.Errorf("Expected %d distinct ids, got %d", len(sessions)*perSession, len(seen))
	}
}

func TestDiscussionCommentRepo_RoundTrip(t *testing.T) {
	session := cassandraSessions(t, 1)[0]
	repo := repository.NewDiscussionCommentRepo(session)
	ctx := context.Background()

	key := models.CommentKey{Country: models.DefaultCountry, TweetID: 7, ID: time.Now().UnixNano()}
	if err := repo.Save(ctx, &models.DiscussionComment{Key: key, Content: "first"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	found, err := repo.FindByID(ctx, key.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found == nil || found.Key != key || found.Content != "first" {
		t.Fatalf("Unexpected comment: %+v", found)
	}

	if err := repo.DeleteByKey(ctx, key); err != nil {
		t.Fatalf("DeleteByKey failed: %v", err)
	}
	if found, _ := repo.FindByID(ctx, key.ID); found != nil {
		t.Error("Comment should be gone")
	}
}
