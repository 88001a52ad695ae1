package market_test

import (
	"context"
	"testing"

	"skillora/internal/model"
	"skillora/internal/testutil"
)

func TestNotifications_NewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewTestService(t)
	sess := login(t, svc, model.RoleClient, "Grace")

	if _, err := svc.PostJob(ctx, sess, model.JobDraft{Title: "One"}); err != nil {
		t.Fatalf("PostJob() error = %v", err)
	}

	notifs, err := svc.GetNotifications(ctx)
	if err != nil {
		t.Fatalf("GetNotifications() error = %v", err)
	}
	if len(notifs) != 2 {
		t.Fatalf("len(notifications) = %d, want 2", len(notifs))
	}
	if notifs[0].Type != model.NotificationSuccess || notifs[1].ID != "notif_welcome" {
		t.Errorf("notifications = %+v, want job notice before welcome", notifs)
	}
}

func TestMarkNotificationsRead(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewTestService(t)

	n, err := svc.MarkNotificationsRead(ctx)
	if err != nil || n != 0 {
		t.Fatalf("MarkNotificationsRead() on empty feed = %d, %v; want 0, nil", n, err)
	}

	sess := login(t, svc, model.RoleClient, "Grace")
	if _, err := svc.PostJob(ctx, sess, model.JobDraft{Title: "One"}); err != nil {
		t.Fatalf("PostJob() error = %v", err)
	}

	n, err = svc.MarkNotificationsRead(ctx)
	if err != nil {
		t.Fatalf("MarkNotificationsRead() error = %v", err)
	}
	if n != 2 {
		t.Errorf("MarkNotificationsRead() = %d, want 2", n)
	}

	notifs, _ := svc.GetNotifications(ctx)
	for _, nt := range notifs {
		if !nt.IsRead {
			t.Errorf("notification %s still unread", nt.ID)
		}
	}

	n, _ = svc.MarkNotificationsRead(ctx)
	if n != 0 {
		t.Errorf("second MarkNotificationsRead() = %d, want 0", n)
	}
}
