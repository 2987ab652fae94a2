package fiscal

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pdv-pro/internal/domain"
	"github.com/tu-usuario/pdv-pro/internal/domain/entity"
	"github.com/tu-usuario/pdv-pro/internal/domain/repository"
	"github.com/tu-usuario/pdv-pro/pkg/logger"
)

// UseCase processa os documentos fiscais registrados pelo fechamento de
// venda: transmite os pendentes e serve a consulta do documento de uma venda.
type UseCase struct {
	emissor       Emissor
	nfceRepo      repository.NFCeRepository
	vendaRepo     repository.VendaRepository
	pagamentoRepo repository.PagamentoRepository
	lojaRepo      repository.LojaRepository
	log           *logger.Logger
}

// NewUseCase constrói o caso de uso.
func NewUseCase(
	emissor Emissor,
	nfceRepo repository.NFCeRepository,
	vendaRepo repository.VendaRepository,
	pagamentoRepo repository.PagamentoRepository,
	lojaRepo repository.LojaRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		emissor:       emissor,
		nfceRepo:      nfceRepo,
		vendaRepo:     vendaRepo,
		pagamentoRepo: pagamentoRepo,
		lojaRepo:      lojaRepo,
		log:           log,
	}
}

// ProcessarPendentes transmite até `limite` documentos em PENDENTE_GERACAO.
// Falha de transmissão de um documento não interrompe os demais; o documento
// permanece pendente para a próxima rodada. Devolve quantos foram marcados
// (autorizados ou rejeitados).
func (uc *UseCase) ProcessarPendentes(ctx context.Context, limite int) (int, error) {
	if limite <= 0 {
		limite = 20
	}
	pendentes, err := uc.nfceRepo.ListPendentes(limite)
	if err != nil {
		return 0, err
	}

	processados := 0
	for _, doc := range pendentes {
		if err := uc.processar(ctx, doc); err != nil {
			uc.log.Warn().Err(err).
				Str("nfce_id", doc.ID).
				Str("venda_id", doc.IDVenda).
				Msg("transmissão da NFC-e falhou; documento permanece pendente")
			continue
		}
		processados++
	}
	return processados, nil
}

func (uc *UseCase) processar(ctx context.Context, doc *entity.NFCe) error {
	loja, err := uc.lojaRepo.GetByID(doc.IDLoja)
	if err != nil {
		return err
	}
	if loja == nil {
		return domain.ErrLojaNaoEncontrada
	}
	itens, err := uc.nfceRepo.ListItens(doc.ID)
	if err != nil {
		return err
	}

	aut, err := uc.emissor.Emitir(ctx, loja, doc, itens)
	if err != nil {
		return err
	}
	if aut.Rejeitada {
		uc.log.Info().
			Str("nfce_id", doc.ID).
			Str("motivo", aut.Motivo).
			Msg("NFC-e rejeitada pela SEFAZ")
		return uc.nfceRepo.MarcarRejeitada(doc.ID, aut.Motivo)
	}

	uc.log.Info().
		Str("nfce_id", doc.ID).
		Str("chave", aut.ChaveAcesso).
		Str("protocolo", aut.Protocolo).
		Msg("NFC-e autorizada")
	return uc.nfceRepo.MarcarAutorizada(doc.ID, aut.ChaveAcesso, aut.URLConsulta, aut.Protocolo, time.Now())
}

// ConsultaNFCe reúne o documento fiscal de uma venda com os dados exibidos no
// cupom: itens congelados, pagamentos e troco.
type ConsultaNFCe struct {
	NFCe       *entity.NFCe
	Itens      []*entity.NFCeItem
	Venda      *entity.Venda
	Pagamentos []*entity.Pagamento
	Troco      decimal.Decimal
}

// Consultar devolve o documento fiscal da venda, com itens, pagamentos e
// troco calculado (ofertado menos total). ErrNFCeNaoEncontrada quando a venda
// não tem documento.
func (uc *UseCase) Consultar(ctx context.Context, cnpjLoja, idVenda string) (*ConsultaNFCe, error) {
	v, err := uc.vendaRepo.GetByID(idVenda)
	if err != nil {
		return nil, err
	}
	if v == nil || v.CNPJLoja != cnpjLoja {
		return nil, domain.ErrVendaNaoEncontrada
	}

	doc, err := uc.nfceRepo.GetByVenda(idVenda)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNFCeNaoEncontrada
	}
	itens, err := uc.nfceRepo.ListItens(doc.ID)
	if err != nil {
		return nil, err
	}
	pagamentos, err := uc.pagamentoRepo.ListByVenda(idVenda)
	if err != nil {
		return nil, err
	}

	totalPago := decimal.Zero
	for _, p := range pagamentos {
		totalPago = totalPago.Add(p.Valor)
	}
	troco := totalPago.Sub(v.ValorTotal)
	if troco.IsNegative() {
		troco = decimal.Zero
	}

	return &ConsultaNFCe{
		NFCe:       doc,
		Itens:      itens,
		Venda:      v,
		Pagamentos: pagamentos,
		Troco:      troco,
	}, nil
}
