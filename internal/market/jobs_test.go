package market_test

import (
	"context"
	"reflect"
	"testing"

	"skillora/internal/market"
	"skillora/internal/model"
	"skillora/internal/store"
	"skillora/internal/testutil"
)

func TestGetJobs_Search(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{name: "empty query returns all", query: "", wantIDs: []string{"job_1", "job_2", "job_3"}},
		{name: "title match is case-insensitive", query: "PYTHON", wantIDs: []string{"job_2"}},
		{name: "description match", query: "coffee brand", wantIDs: []string{"job_3"}},
		{name: "tag match", query: "figma", wantIDs: []string{"job_1"}},
		{name: "no match", query: "cobol", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewTestService(t)

			jobs, err := svc.GetJobs(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("GetJobs() error = %v", err)
			}
			if len(jobs) != len(tt.wantIDs) {
				t.Fatalf("GetJobs(%q) returned %d jobs, want %d", tt.query, len(jobs), len(tt.wantIDs))
			}
			for i, j := range jobs {
				if j.ID != tt.wantIDs[i] {
					t.Errorf("jobs[%d].ID = %s, want %s", i, j.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestGetJobByID(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewTestService(t)

	job, err := svc.GetJobByID(ctx, "job_2")
	if err != nil {
		t.Fatalf("GetJobByID() error = %v", err)
	}
	if job == nil || job.Title != "Python Script for Data Analysis" {
		t.Errorf("GetJobByID(job_2) = %+v", job)
	}

	missing, err := svc.GetJobByID(ctx, "job_404")
	if err != nil {
		t.Fatalf("GetJobByID() error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetJobByID(job_404) = %+v, want nil", missing)
	}
}

func TestPostJob(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewTestService(t)
	sess := login(t, svc, model.RoleClient, "Grace Hopper")

	before, _ := svc.GetJobs(ctx, "")

	job, err := svc.PostJob(ctx, sess, model.JobDraft{Title: "Build a CLI", Description: "Cobra please"})
	if err != nil {
		t.Fatalf("PostJob() error = %v", err)
	}

	want := model.Job{
		ID:           "job_id-1",
		ClientID:     "client_current",
		Title:        "Build a CLI",
		Description:  "Cobra please",
		Budget:       "Rs 500",
		Type:         model.JobTypeFixedPrice,
		Level:        model.LevelIntermediate,
		PostedTime:   "Just now",
		ClientRating: 5.0,
		Verified:     true,
		IsNew:        true,
		Status:       model.JobStatusOpen,
	}
	got := *job
	got.Tags = nil
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PostJob() = %+v, want %+v", got, want)
	}
	if len(job.Tags) != 2 || job.Tags[0] != "New" || job.Tags[1] != "Hiring" {
		t.Errorf("Tags = %v, want [New Hiring]", job.Tags)
	}

	after, _ := svc.GetJobs(ctx, "")
	if len(after) != len(before)+1 {
		t.Errorf("len(GetJobs) = %d, want %d", len(after), len(before)+1)
	}
	if after[0].ID != job.ID {
		t.Errorf("GetJobs()[0] = %s, want new job first", after[0].ID)
	}

	mine, _ := svc.GetMyJobs(ctx, sess)
	found := false
	for _, j := range mine {
		if j.ID == job.ID {
			found = true
		}
	}
	if !found {
		t.Error("GetMyJobs() does not include the posted job")
	}

	notifs, _ := svc.GetNotifications(ctx)
	if notifs[0].Text != `Your job "Build a CLI" has been posted successfully.` {
		t.Errorf("notification text = %q", notifs[0].Text)
	}
	if notifs[0].Type != model.NotificationSuccess || notifs[0].IsRead {
		t.Errorf("notification = %+v, want unread success", notifs[0])
	}
}

func TestPostJob_Defaults(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewTestService(t)

	job, err := svc.PostJob(ctx, nil, model.JobDraft{})
	if err != nil {
		t.Fatalf("PostJob() error = %v", err)
	}
	if job.Title != "Untitled Job" {
		t.Errorf("Title = %q, want %q", job.Title, "Untitled Job")
	}
	if job.ClientID != "unknown" {
		t.Errorf("ClientID = %q, want %q", job.ClientID, "unknown")
	}
}

func TestPostJob_BudgetFromRandomSource(t *testing.T) {
	svc := newServiceWithRandom(t, 100)

	job, err := svc.PostJob(context.Background(), nil, model.JobDraft{Title: "x"})
	if err != nil {
		t.Fatalf("PostJob() error = %v", err)
	}
	if job.Budget != "Rs 5400" {
		t.Errorf("Budget = %q, want %q", job.Budget, "Rs 5400")
	}
}

// newServiceWithRandom builds a service whose random source returns v,
// clamped below each requested bound.
func newServiceWithRandom(t *testing.T, v int) *market.Service {
	t.Helper()
	return market.NewService(store.NewMemoryStore(), market.NewNopLogger(),
		testutil.FixedClock(), testutil.NewStubIDGenerator(), testutil.StubRandom{Value: v}, market.NoLatency{})
}

func TestGetMyJobs(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous has none", func(t *testing.T) {
		svc := testutil.NewTestService(t)
		jobs, err := svc.GetMyJobs(ctx, nil)
		if err != nil {
			t.Fatalf("GetMyJobs() error = %v", err)
		}
		if jobs == nil || len(jobs) != 0 {
			t.Errorf("GetMyJobs(nil) = %v, want empty non-nil", jobs)
		}
	})

	t.Run("includes default client jobs", func(t *testing.T) {
		svc := testutil.NewTestService(t)
		sess := login(t, svc, model.RoleClient, "Grace")

		jobs, err := svc.GetMyJobs(ctx, sess)
		if err != nil {
			t.Fatalf("GetMyJobs() error = %v", err)
		}
		if len(jobs) != 3 {
			t.Errorf("len(GetMyJobs) = %d, want 3 seeded jobs", len(jobs))
		}
	})

	t.Run("excludes other clients", func(t *testing.T) {
		svc := testutil.NewTestService(t)
		if _, err := svc.PostJob(ctx, nil, model.JobDraft{Title: "anon job"}); err != nil {
			t.Fatalf("PostJob() error = %v", err)
		}
		sess := login(t, svc, model.RoleClient, "Grace")

		jobs, _ := svc.GetMyJobs(ctx, sess)
		for _, j := range jobs {
			if j.Title == "anon job" {
				t.Error("GetMyJobs() includes a job posted by another client")
			}
		}
	})
}
