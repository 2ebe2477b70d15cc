package billing

import (
	"context"
	"time"

	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain/entity"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/infrastructure/fattureincloud"
)

// InvoiceClient porta verso l'API di Fatture in Cloud. L'implementazione
// concreta è il client HTTP; per i test si inietta un mock.
type InvoiceClient interface {
	CreaDocumento(ctx context.Context, tipo string, doc *fattureincloud.NuovoDocumento) (*fattureincloud.RispostaNuovoDoc, error)
	DettagliDocumento(ctx context.Context, tipo string, id int64) (*fattureincloud.DettagliDocumento, error)
	ListaInfo(ctx context.Context, campi []string) (*fattureincloud.ListaInfo, error)
}

// StoreOrderFetcher recupera un ordine direttamente dallo store quando non è
// ancora stato sincronizzato localmente (l'equivalente di wc_get_order).
type StoreOrderFetcher interface {
	FetchOrder(ctx context.Context, wooID int64) (*entity.Order, error)
}

// TransientStore cache con scadenza per link documento e liste info.
type TransientStore interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
}
