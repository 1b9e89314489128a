package cron

import (
	"Pressroom/internal/job"
	"testing"
)

func TestRegisterJobsRejectsBadExpression(t *testing.T) {
	mgr := NewCronManager(job.NewHotListJob(nil), "every ten minutes")
	if err := mgr.RegisterJobs(); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestRegisterJobs(t *testing.T) {
	mgr := NewCronManager(job.NewHotListJob(nil), "0 */10 * * * *")
	if err := mgr.RegisterJobs(); err != nil {
		t.Fatalf("register: %v", err)
	}
	if n := len(mgr.engine.Entries()); n != 1 {
		t.Fatalf("entries = %d, want 1", n)
	}
}
