package homechef

import (
	"context"

	"github.com/kailas-cloud/homechef/internal/domain"
	"github.com/kailas-cloud/homechef/internal/domain/conversation"
	"github.com/kailas-cloud/homechef/internal/domain/document"
	domusage "github.com/kailas-cloud/homechef/internal/domain/usage"
	healthuc "github.com/kailas-cloud/homechef/internal/usecase/health"
	sessionuc "github.com/kailas-cloud/homechef/internal/usecase/session"
)

// --- sessionUseCase mock ---

type mockSessionUC struct {
	createFn  func() (sessionuc.Info, error)
	getFn     func(id string) (sessionuc.Info, error)
	deleteFn  func(id string) error
	generalFn func(ctx context.Context, id, text string) (conversation.Turn, error)
	visionFn  func(ctx context.Context, id, text string, image domain.Image) (conversation.Turn, error)
	uploadFn  func(ctx context.Context, id string, doc document.Document) (sessionuc.UploadResult, error)
	askFn     func(ctx context.Context, id, text string) (conversation.Turn, error)
	resetFn   func(id string, mode conversation.Mode) error
	historyFn func(id string, mode conversation.Mode) ([]conversation.Turn, error)
}

func (m *mockSessionUC) Create() (sessionuc.Info, error) { return m.createFn() }

func (m *mockSessionUC) Get(id string) (sessionuc.Info, error) { return m.getFn(id) }

func (m *mockSessionUC) Delete(id string) error { return m.deleteFn(id) }

func (m *mockSessionUC) SendGeneral(ctx context.Context, id, text string) (conversation.Turn, error) {
	return m.generalFn(ctx, id, text)
}

func (m *mockSessionUC) SendVision(
	ctx context.Context, id, text string, image domain.Image,
) (conversation.Turn, error) {
	return m.visionFn(ctx, id, text, image)
}

func (m *mockSessionUC) UploadDocument(
	ctx context.Context, id string, doc document.Document,
) (sessionuc.UploadResult, error) {
	return m.uploadFn(ctx, id, doc)
}

func (m *mockSessionUC) AskDocument(ctx context.Context, id, text string) (conversation.Turn, error) {
	return m.askFn(ctx, id, text)
}

func (m *mockSessionUC) Reset(id string, mode conversation.Mode) error { return m.resetFn(id, mode) }

func (m *mockSessionUC) History(id string, mode conversation.Mode) ([]conversation.Turn, error) {
	return m.historyFn(id, mode)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- usageUseCase mock ---

type mockUsageUC struct {
	fn func(ctx context.Context, period domusage.Period) domusage.Report
}

func (m *mockUsageUC) GetReport(ctx context.Context, period domusage.Period) domusage.Report {
	return m.fn(ctx, period)
}
