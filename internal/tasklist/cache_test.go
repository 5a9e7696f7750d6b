package tasklist_test

import (
	"context"
	"testing"

	"realtodo/internal/service"
	"realtodo/internal/tasklist"
	"realtodo/internal/testutil"
)

func TestReload_ReplacesContents(t *testing.T) {
	svc := testutil.NewFakeService()
	token := svc.IssueToken("a@b.com")
	svc.AddTask("a@b.com", "one", false)
	c := tasklist.New(svc)

	if err := c.Reload(context.Background(), token); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 task, got %d", c.Len())
	}

	svc.AddTask("a@b.com", "two", false)
	if err := c.Reload(context.Background(), token); err != nil {
		t.Fatalf("reload: %v", err)
	}
	items := c.Items()
	if len(items) != 2 || items[0].Title != "two" || items[1].Title != "one" {
		t.Errorf("expected server order [two one], got %+v", items)
	}
}

func TestReload_ErrorKeepsPreviousContents(t *testing.T) {
	svc := testutil.NewFakeService()
	token := svc.IssueToken("a@b.com")
	svc.AddTask("a@b.com", "one", false)
	c := tasklist.New(svc)
	c.Reload(context.Background(), token)

	svc.Revoke(token)
	err := c.Reload(context.Background(), token)
	if !service.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("expected previous contents kept, got %d items", c.Len())
	}
}

func TestMutations_DoNotTouchCache(t *testing.T) {
	svc := testutil.NewFakeService()
	token := svc.IssueToken("a@b.com")
	id := svc.AddTask("a@b.com", "one", false)
	c := tasklist.New(svc)
	ctx := context.Background()
	c.Reload(ctx, token)

	if err := c.Create(ctx, token, "two"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := c.Toggle(ctx, token, id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	items := c.Items()
	if len(items) != 1 || items[0].Done {
		t.Errorf("expected cache untouched until reload, got %+v", items)
	}

	if err := c.Delete(ctx, token, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("expected cache untouched until reload, got %d items", c.Len())
	}

	c.Reload(ctx, token)
	items = c.Items()
	if len(items) != 1 || items[0].Title != "two" {
		t.Errorf("expected [two] after reload, got %+v", items)
	}
}

func TestItems_ReturnsCopy(t *testing.T) {
	svc := testutil.NewFakeService()
	token := svc.IssueToken("a@b.com")
	svc.AddTask("a@b.com", "one", false)
	c := tasklist.New(svc)
	c.Reload(context.Background(), token)

	items := c.Items()
	items[0].Title = "changed"
	if c.Items()[0].Title != "one" {
		t.Error("Items should return a copy")
	}
}

func TestClear(t *testing.T) {
	svc := testutil.NewFakeService()
	token := svc.IssueToken("a@b.com")
	svc.AddTask("a@b.com", "one", false)
	c := tasklist.New(svc)
	c.Reload(context.Background(), token)

	c.Clear()
	if c.Len() != 0 || len(c.Items()) != 0 {
		t.Error("expected empty cache after Clear")
	}
}
