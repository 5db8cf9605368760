package payments

import (
	"context"
	"fmt"
	"log"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/config"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/models"
)

// Client integra cobranças com o Mercado Pago. A transação local é a
// referência externa da preferência; o webhook fecha o ciclo
// marcando-a como paga.
type Client struct {
	pref preference.Client
	pay  payment.Client
}

// New devolve nil sem access token configurado; os endpoints de
// pagamento respondem indisponível nesse caso.
func New(cfg *config.Config) *Client {
	if cfg.MercadoPagoToken == "" {
		return nil
	}

	mpcfg, err := mpconfig.New(cfg.MercadoPagoToken)
	if err != nil {
		log.Println("mercadopago disabled:", err)
		return nil
	}

	return &Client{
		pref: preference.NewClient(mpcfg),
		pay:  payment.NewClient(mpcfg),
	}
}

// CheckoutLink cria uma preferência de checkout para a transação e
// devolve a URL de pagamento.
func (c *Client) CheckoutLink(
	ctx context.Context,
	shop *models.Barbershop,
	tx *models.Transaction,
) (string, error) {

	resp, err := c.pref.Create(ctx, preference.Request{
		ExternalReference: strconv.FormatUint(uint64(tx.ID), 10),
		Items: []preference.ItemRequest{
			{
				Title:     fmt.Sprintf("%s - %s", shop.Name, tx.Category),
				Quantity:  1,
				UnitPrice: tx.Amount,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("creating preference: %w", err)
	}

	return resp.InitPoint, nil
}

// PaymentStatus consulta o pagamento notificado e devolve a
// transação referenciada e se o pagamento foi aprovado.
func (c *Client) PaymentStatus(
	ctx context.Context,
	paymentID int,
) (txID uint, approved bool, externalID string, err error) {

	p, err := c.pay.Get(ctx, paymentID)
	if err != nil {
		return 0, false, "", fmt.Errorf("fetching payment: %w", err)
	}

	id, err := strconv.ParseUint(p.ExternalReference, 10, 64)
	if err != nil {
		return 0, false, "", fmt.Errorf("invalid external reference %q", p.ExternalReference)
	}

	return uint(id), p.Status == "approved", strconv.Itoa(p.ID), nil
}
