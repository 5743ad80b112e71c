package docprep

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestService_Start_Completes(t *testing.T) {
	conv := &fakeConverter{out: "/tmp/plan.docx"}
	svc := newFakeService(conv, &fakeRewriter{}, &fakeExpander{}, &fakeGenerator{})

	task := svc.Start(context.Background(), "plan.doc")

	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("task did not complete")
	}

	result, err := task.Wait()
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if result.DocxPath != "/tmp/plan.docx" {
		t.Errorf("DocxPath = %q, want /tmp/plan.docx", result.DocxPath)
	}
}

func TestService_Start_ReturnsError(t *testing.T) {
	stepErr := errors.New("boom")
	svc := newFakeService(&fakeConverter{err: stepErr}, &fakeRewriter{}, &fakeExpander{}, &fakeGenerator{})

	task := svc.Start(context.Background(), "plan.doc")

	if _, err := task.Wait(); !errors.Is(err, stepErr) {
		t.Errorf("Wait() error = %v, want wrapped %v", err, stepErr)
	}
	if err := task.Err(); !errors.Is(err, stepErr) {
		t.Errorf("Err() = %v, want wrapped %v", err, stepErr)
	}
}

func TestTask_ResultNonBlocking(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	conv := &blockingConverter{started: started, release: release}
	svc := newFakeService(nil, &fakeRewriter{}, &fakeExpander{}, &fakeGenerator{})
	svc.converter = conv

	task := svc.Start(context.Background(), "plan.doc")
	<-started

	if _, ok := task.Result(); ok {
		t.Error("Result() reported completion while the run is in progress")
	}
	if err := task.Err(); err != nil {
		t.Errorf("Err() = %v before completion, want nil", err)
	}

	close(release)
	if _, err := task.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if _, ok := task.Result(); !ok {
		t.Error("Result() did not report completion after Wait")
	}
}

func TestTask_WaitIsRepeatable(t *testing.T) {
	svc := newFakeService(&fakeConverter{out: "x.docx"}, &fakeRewriter{}, &fakeExpander{}, &fakeGenerator{})
	task := svc.Start(context.Background(), "plan.doc")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := task.Wait()
			if err != nil || result.DocxPath != "x.docx" {
				t.Errorf("Wait() = (%v, %v)", result, err)
			}
		}()
	}
	wg.Wait()
}

type blockingConverter struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingConverter) Convert(inputPath, outputPath string) (string, error) {
	close(b.started)
	<-b.release
	return "x.docx", nil
}
