package repos

import (
	"context"
	"testing"

	"github.com/iotsphere/iotsphere-backend/internal/repos/testutil"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

func TestTagRepoAssignIsIdempotent(t *testing.T) {
	conn := testutil.DB(t)
	log := testutil.Logger(t)
	models := NewModelRepo(conn, log)
	tags := NewTagRepo(conn, log)
	ctx := context.Background()

	seedModel(t, models, "m1")
	tag, err := tags.Create(ctx, nil, &types.Tag{Name: "production", Color: "#2e7d32"})
	if err != nil {
		t.Fatalf("Create tag: %v", err)
	}

	if err := tags.AssignToModel(ctx, nil, "m1", tag.ID); err != nil {
		t.Fatalf("AssignToModel: %v", err)
	}
	// assigning twice must not error or duplicate
	if err := tags.AssignToModel(ctx, nil, "m1", tag.ID); err != nil {
		t.Fatalf("repeat AssignToModel: %v", err)
	}

	got, err := tags.GetForModel(ctx, nil, "m1")
	if err != nil {
		t.Fatalf("GetForModel: %v", err)
	}
	if len(got) != 1 || got[0].Name != "production" {
		t.Fatalf("model tags = %+v, want single production tag", got)
	}
}

func TestTagRepoUnassign(t *testing.T) {
	conn := testutil.DB(t)
	log := testutil.Logger(t)
	models := NewModelRepo(conn, log)
	tags := NewTagRepo(conn, log)
	ctx := context.Background()

	seedModel(t, models, "m1")
	tag, err := tags.Create(ctx, nil, &types.Tag{Name: "canary"})
	if err != nil {
		t.Fatalf("Create tag: %v", err)
	}
	if err := tags.AssignToModel(ctx, nil, "m1", tag.ID); err != nil {
		t.Fatalf("AssignToModel: %v", err)
	}
	if err := tags.UnassignFromModel(ctx, nil, "m1", tag.ID); err != nil {
		t.Fatalf("UnassignFromModel: %v", err)
	}

	got, err := tags.GetForModel(ctx, nil, "m1")
	if err != nil {
		t.Fatalf("GetForModel: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("tags remain after unassign: %+v", got)
	}
}

func TestTagRepoDeleteRemovesAssignments(t *testing.T) {
	conn := testutil.DB(t)
	log := testutil.Logger(t)
	models := NewModelRepo(conn, log)
	tags := NewTagRepo(conn, log)
	ctx := context.Background()

	seedModel(t, models, "m1")
	tag, err := tags.Create(ctx, nil, &types.Tag{Name: "production"})
	if err != nil {
		t.Fatalf("Create tag: %v", err)
	}
	if err := tags.AssignToModel(ctx, nil, "m1", tag.ID); err != nil {
		t.Fatalf("AssignToModel: %v", err)
	}

	if err := tags.Delete(ctx, nil, tag.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var count int64
	if err := conn.Model(&types.ModelTagAssignment{}).Where("tag_id = ?", tag.ID).Count(&count).Error; err != nil {
		t.Fatalf("count assignments: %v", err)
	}
	if count != 0 {
		t.Fatalf("%d orphaned assignments after tag delete", count)
	}
}
