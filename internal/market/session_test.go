package market_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"skillora/internal/market"
	"skillora/internal/model"
	"skillora/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func login(t *testing.T, svc *testutil.TestService, role model.Role, name string) *market.Session {
	t.Helper()
	u, err := svc.Login(context.Background(), role, name)
	if err != nil {
		t.Fatalf("Login(%s, %s) error = %v", role, name, err)
	}
	return market.NewSession(u)
}

func TestLogin_BuildsUser(t *testing.T) {
	tests := []struct {
		name string
		role model.Role
		want model.User
	}{
		{
			name: "freelancer",
			role: model.RoleFreelancer,
			want: model.User{
				ID:         "freelancer_current",
				Name:       "Ada Lovelace",
				Email:      "ada.lovelace@skillora.com",
				Role:       model.RoleFreelancer,
				Avatar:     "https://i.pravatar.cc/150?u=AdaLovelace",
				Headline:   "Professional Freelancer",
				Bio:        "I am passionate about creating great work and collaborating with amazing people on Skillora.",
				Location:   "Remote, India",
				HourlyRate: "Rs 1000/hr",
				Skills:     []string{"React", "Design", "Communication"},
			},
		},
		{
			name: "client",
			role: model.RoleClient,
			want: model.User{
				ID:       "client_current",
				Name:     "Ada Lovelace",
				Email:    "ada.lovelace@skillora.com",
				Role:     model.RoleClient,
				Avatar:   "https://i.pravatar.cc/150?u=AdaLovelace",
				Headline: "Hiring Manager",
				Bio:      "I am passionate about creating great work and collaborating with amazing people on Skillora.",
				Location: "Remote, India",
				Skills:   []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewTestService(t)

			got, err := svc.Login(context.Background(), tt.role, "Ada Lovelace")
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("Login() = %+v, want %+v", *got, tt.want)
			}

			current, err := svc.CurrentUser(context.Background())
			if err != nil {
				t.Fatalf("CurrentUser() error = %v", err)
			}
			if current == nil || current.ID != tt.want.ID {
				t.Errorf("CurrentUser() = %+v, want id %s", current, tt.want.ID)
			}
		})
	}
}

func TestLogin_WelcomeNotification(t *testing.T) {
	svc := testutil.NewTestService(t)
	login(t, svc, model.RoleFreelancer, "Ada Lovelace")

	notifs, err := svc.GetNotifications(context.Background())
	if err != nil {
		t.Fatalf("GetNotifications() error = %v", err)
	}
	if len(notifs) != 1 {
		t.Fatalf("len(notifications) = %d, want 1", len(notifs))
	}
	want := model.Notification{
		ID:   "notif_welcome",
		Text: "Welcome to Skillora, Ada Lovelace! Your account is ready.",
		Time: "Just now",
		Type: model.NotificationInfo,
	}
	if notifs[0] != want {
		t.Errorf("notification = %+v, want %+v", notifs[0], want)
	}
}

func TestLogin_ReusesSessionForSameRole(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewTestService(t)

	first, err := svc.Login(ctx, model.RoleFreelancer, "Ada Lovelace")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	second, err := svc.Login(ctx, model.RoleFreelancer, "Someone Else")
	if err != nil {
		t.Fatalf("second Login() error = %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("second Login() id = %s, want %s", second.ID, first.ID)
	}
	if second.Name != "Ada Lovelace" {
		t.Errorf("second Login() name = %q, want the reused user", second.Name)
	}

	notifs, _ := svc.GetNotifications(ctx)
	if len(notifs) != 1 {
		t.Errorf("len(notifications) = %d, want 1 (no second welcome)", len(notifs))
	}
}

func TestLogin_DifferentRoleReplacesSession(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewTestService(t)

	login(t, svc, model.RoleFreelancer, "Ada Lovelace")
	client, err := svc.Login(ctx, model.RoleClient, "Grace Hopper")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if client.ID != "client_current" {
		t.Errorf("Login() id = %s, want client_current", client.ID)
	}

	current, _ := svc.CurrentUser(ctx)
	if current == nil || current.Role != model.RoleClient {
		t.Errorf("CurrentUser() = %+v, want client", current)
	}
}

func TestLogin_InvalidRole(t *testing.T) {
	svc := testutil.NewTestService(t)

	_, err := svc.Login(context.Background(), model.Role("admin"), "Ada")
	if !errors.Is(err, market.ErrInvalidRole) {
		t.Errorf("Login() error = %v, want ErrInvalidRole", err)
	}
}

func TestSession_Anonymous(t *testing.T) {
	var sess *market.Session
	if got := sess.UserID(); got != "unknown" {
		t.Errorf("UserID() = %q, want %q", got, "unknown")
	}
	if sess.User() != nil {
		t.Error("User() of anonymous session should be nil")
	}
	if market.NewSession(nil) != nil {
		t.Error("NewSession(nil) should be nil")
	}
}

func TestService_Session(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewTestService(t)

	sess, err := svc.Session(ctx)
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if sess != nil {
		t.Errorf("Session() before login = %+v, want nil", sess)
	}

	login(t, svc, model.RoleClient, "Grace")
	sess, err = svc.Session(ctx)
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if sess.UserID() != "client_current" {
		t.Errorf("Session().UserID() = %q, want client_current", sess.UserID())
	}
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("merges non-nil fields", func(t *testing.T) {
		svc := testutil.NewTestService(t)
		sess := login(t, svc, model.RoleFreelancer, "Ada Lovelace")

		got, err := svc.UpdateUser(ctx, sess, model.ProfileUpdate{
			Headline: ptr("Go Engineer"),
			Skills:   ptr([]string{"Go"}),
		})
		if err != nil {
			t.Fatalf("UpdateUser() error = %v", err)
		}
		if got.Headline != "Go Engineer" || !reflect.DeepEqual(got.Skills, []string{"Go"}) {
			t.Errorf("UpdateUser() = %+v, want merged headline and skills", got)
		}
		if got.Name != "Ada Lovelace" {
			t.Errorf("Name = %q, untouched field changed", got.Name)
		}

		current, _ := svc.CurrentUser(ctx)
		if current.Headline != "Go Engineer" {
			t.Errorf("persisted Headline = %q, want %q", current.Headline, "Go Engineer")
		}
	})

	t.Run("no user persisted", func(t *testing.T) {
		svc := testutil.NewTestService(t)
		sess := market.NewSession(&model.User{ID: "freelancer_current"})

		got, err := svc.UpdateUser(ctx, sess, model.ProfileUpdate{Bio: ptr("x")})
		if err != nil || got != nil {
			t.Errorf("UpdateUser() = %+v, %v; want nil, nil", got, err)
		}
	})

	t.Run("session for another user", func(t *testing.T) {
		svc := testutil.NewTestService(t)
		login(t, svc, model.RoleFreelancer, "Ada")
		stale := market.NewSession(&model.User{ID: "client_current"})

		got, err := svc.UpdateUser(ctx, stale, model.ProfileUpdate{Bio: ptr("x")})
		if err != nil || got != nil {
			t.Errorf("UpdateUser() = %+v, %v; want nil, nil", got, err)
		}
	})

	t.Run("anonymous session", func(t *testing.T) {
		svc := testutil.NewTestService(t)
		login(t, svc, model.RoleFreelancer, "Ada")

		got, err := svc.UpdateUser(ctx, nil, model.ProfileUpdate{Bio: ptr("x")})
		if err != nil || got != nil {
			t.Errorf("UpdateUser() = %+v, %v; want nil, nil", got, err)
		}
	})
}

func TestLogout_KeepsOtherCollections(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewTestService(t)
	sess := login(t, svc, model.RoleClient, "Grace")
	if _, err := svc.PostJob(ctx, sess, model.JobDraft{Title: "Gopher wanted"}); err != nil {
		t.Fatalf("PostJob() error = %v", err)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	current, err := svc.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if current != nil {
		t.Errorf("CurrentUser() after Logout = %+v, want nil", current)
	}
	jobs, _ := svc.GetJobs(ctx, "")
	if len(jobs) != 4 {
		t.Errorf("len(jobs) after Logout = %d, want 4", len(jobs))
	}
	notifs, _ := svc.GetNotifications(ctx)
	if len(notifs) != 2 {
		t.Errorf("len(notifications) after Logout = %d, want 2", len(notifs))
	}
}

func TestResetDatabase_RestoresSeeds(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewTestService(t)
	sess := login(t, svc, model.RoleClient, "Grace")
	if _, err := svc.PostJob(ctx, sess, model.JobDraft{Title: "Extra"}); err != nil {
		t.Fatalf("PostJob() error = %v", err)
	}
	if _, err := svc.SendMessage(ctx, sess, "c2", "hi"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	if err := svc.ResetDatabase(ctx); err != nil {
		t.Fatalf("ResetDatabase() error = %v", err)
	}

	jobs, err := svc.GetJobs(ctx, "")
	if err != nil {
		t.Fatalf("GetJobs() error = %v", err)
	}
	if got, want := jobIDs(jobs), jobIDs(market.SeedJobs()); !reflect.DeepEqual(got, want) {
		t.Errorf("job ids after reset = %v, want %v", got, want)
	}

	if u, _ := svc.CurrentUser(ctx); u != nil {
		t.Errorf("CurrentUser() after reset = %+v, want nil", u)
	}
	if notifs, _ := svc.GetNotifications(ctx); len(notifs) != 0 {
		t.Errorf("len(notifications) after reset = %d, want 0", len(notifs))
	}
	if msgs, _ := svc.GetMessages(ctx, "c2"); len(msgs) != 0 {
		t.Errorf("c2 thread after reset = %v, want empty", msgs)
	}
	contacts, _ := svc.GetContacts(ctx)
	if !reflect.DeepEqual(contacts, market.SeedContacts()) {
		t.Errorf("contacts after reset = %+v, want seeds", contacts)
	}

	keys, _ := svc.Store.Keys(ctx)
	want := []string{market.KeyContacts, market.KeyJobs, market.KeyMessages}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("store keys after reset = %v, want %v", keys, want)
	}
}

func jobIDs(jobs []model.Job) map[string]bool {
	ids := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		ids[j.ID] = true
	}
	return ids
}
