package income

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/currency"
)

type (
	Repository interface {
		CreateIncome(ctx context.Context, payload Payload) (Income, error)
	}

	Service struct {
		repo        Repository
		currencySvc *currency.Service
	}
)

func NewService(repo Repository, currencySvc *currency.Service) *Service {
	return &Service{repo: repo, currencySvc: currencySvc}
}

// Reduce applies ev to s, identifying the base currency the way the service is configured to.
func (svc *Service) Reduce(s State, ev Event) (State, error) {
	return ReduceWith(svc.currencySvc.Normalizer(), s, ev)
}

func (svc *Service) getCurrency(ctx context.Context, id int, name string) (currency.Currency, error) {
	var (
		c     currency.Currency
		err   error
		field = "idDivisa"
	)
	if id > 0 {
		c, err = svc.currencySvc.GetByID(ctx, id)
	} else {
		field = "currencyName"
		c, err = svc.currencySvc.GetByName(ctx, name)
	}
	if err != nil {
		if errors.Is(err, currency.ErrUnknownCurrency) {
			return c, core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
		}
		return c, errors.Wrap(err, "getting currency")
	}
	return c, nil
}

// Convert values an amount in dollars.
func (svc *Service) Convert(ctx context.Context, cr ConvertRequest) (currency.Amount, error) {
	c, err := svc.getCurrency(ctx, cr.CurrencyID, cr.CurrencyName)
	if err != nil {
		return currency.Amount{}, err
	}
	return svc.currencySvc.Normalizer().Normalize(cr.Amount, c, cr.Rate), nil
}

// Create registers a validated income. Its dollar amount is computed here, never taken from the form.
func (svc *Service) Create(ctx context.Context, ni NewIncome) (Income, error) {
	c, err := svc.getCurrency(ctx, ni.CurrencyID, "")
	if err != nil {
		return Income{}, err
	}
	amount := svc.currencySvc.Normalizer().Normalize(ni.Amount, c, ni.Rate)

	inc, err := svc.repo.CreateIncome(ctx, Payload{
		Amount:          amount.Amount,
		CurrencyID:      c.ID,
		Rate:            amount.ExchangeRate,
		AmountInDollars: amount.AmountInUSD,
		Description:     core.CleanString(ni.Description),
	})
	if err != nil {
		return Income{}, errors.Wrap(err, "creating income")
	}
	return inc, nil
}
