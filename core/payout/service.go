package payout

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/professor"
)

type (
	Repository interface {
		CreatePayout(ctx context.Context, payload Payload) (Payout, error)
	}

	Service struct {
		repo     Repository
		profRepo professor.Repository
		mailSvc  core.EmailService
		logger   core.Logger
	}
)

func NewService(repo Repository, profRepo professor.Repository, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{
		repo:     repo,
		profRepo: profRepo,
		mailSvc:  mailSvc,
		logger:   logger,
	}
}

func (svc *Service) Preview(req PreviewRequest) Preview {
	return BuildPreview(req)
}

// Create submits the payable items of np, then sends the professor a statement.
// np is expected to be validated.
func (svc *Service) Create(ctx context.Context, np NewPayout) (Payout, error) {
	items := make([]LineItem, len(np.Items))
	for i, item := range np.Items {
		items[i] = item.Recompute()
	}

	pay, err := svc.repo.CreatePayout(ctx, NewPayload(np.ProfessorID, items, np.Discount))
	if err != nil {
		return Payout{}, errors.Wrap(err, "creating payout")
	}

	// a payout is registered even if its notification fails
	sum := Summarize(Payable(items), np.Discount)
	if !pay.Total.IsZero() || !pay.Subtotal.IsZero() {
		sum = Summary{Subtotal: pay.Subtotal, Discount: pay.Discount, Total: pay.Total}
	}
	if err := svc.notify(ctx, np.ProfessorID, items, sum); err != nil {
		svc.logger.Error("payout.Service.Create", errors.Wrapf(err, "notifying professor %d", np.ProfessorID))
	}
	return pay, nil
}

func (svc *Service) notify(ctx context.Context, professorID int, items []LineItem, sum Summary) error {
	prof, err := svc.profRepo.GetProfessor(ctx, professorID)
	if err != nil {
		return errors.Wrap(err, "getting professor")
	}
	msg, err := newStatementMessage(prof, items, sum)
	if err != nil {
		return err
	}
	if msg != nil {
		svc.mailSvc.SendMessages(msg)
	}
	return nil
}
