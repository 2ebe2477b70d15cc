package billing

import (
	"context"

	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/dto"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/infrastructure/fattureincloud"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/config"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/logger"
)

// chiave cache per le liste info (scadenza lunga, dati quasi statici).
const chiaveInfo = "fattureincloud_info"

// ReferenceDataUseCase espone le liste di riferimento dell'account
// (aliquote IVA, conti/wallet, paesi) con cache multi-giorno: cambiano
// di rado e ogni fetch costa una chiamata al provider.
type ReferenceDataUseCase struct {
	client InvoiceClient
	cache  TransientStore
	cfg    config.FICConfig
	log    *logger.Logger
}

// NewReferenceDataUseCase costruisce il caso d'uso.
func NewReferenceDataUseCase(client InvoiceClient, cache TransientStore, cfg config.FICConfig, log *logger.Logger) *ReferenceDataUseCase {
	return &ReferenceDataUseCase{client: client, cache: cache, cfg: cfg, log: log}
}

// Info restituisce le liste di riferimento, dalla cache se valida.
func (uc *ReferenceDataUseCase) Info(ctx context.Context) (*dto.InfoResponse, error) {
	if v, ok := uc.cache.Get(chiaveInfo); ok {
		if cached, ok := v.(*dto.InfoResponse); ok {
			return cached, nil
		}
	}

	liste, err := uc.client.ListaInfo(ctx, []string{"lista_iva", "lista_conti", "lista_paesi"})
	if err != nil {
		uc.log.Error().Err(err).Msg("liste info non disponibili")
		return nil, domain.ErrProviderUnavailable
	}

	resp := &dto.InfoResponse{
		ListaIVA:   liste.ListaIVA,
		ListaConti: liste.ListaConti,
		ListaPaesi: liste.ListaPaesi,
	}
	uc.cache.Set(chiaveInfo, resp, uc.cfg.InfoTTL)
	return resp, nil
}

// AliquotePerCodice restituisce le aliquote indicizzate per cod_iva (comodo
// per i mapping delle righe d'ordine).
func (uc *ReferenceDataUseCase) AliquotePerCodice(ctx context.Context) (map[int]fattureincloud.AliquotaIVA, error) {
	info, err := uc.Info(ctx)
	if err != nil {
		return nil, err
	}
	aliquote, ok := info.ListaIVA.([]fattureincloud.AliquotaIVA)
	if !ok {
		return map[int]fattureincloud.AliquotaIVA{}, nil
	}
	out := make(map[int]fattureincloud.AliquotaIVA, len(aliquote))
	for _, a := range aliquote {
		out[a.CodIVA] = a
	}
	return out, nil
}
