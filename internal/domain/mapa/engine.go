package mapa

import (
	"github.com/agrofiscal/mapa-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Processor agrega um lote de NF-es parseadas contra um snapshot imutável do
// catálogo. O processamento é tudo-ou-nada: a primeira empresa ou produto sem
// cadastro contamina o lote inteiro, e os totais parciais são descartados.
type Processor struct {
	index *Index
}

// NewProcessor cria um processador sobre o índice de catálogo fornecido.
func NewProcessor(index *Index) *Processor {
	return &Processor{index: index}
}

// Process visita cada NF-e do lote e devolve um Result terminal.
//
// Regras de resolução, por NF-e:
//   - O emitente é resolvido pelo nome (razão social). Emitente sem cadastro
//     gera uma entrada não cadastrada por item da NF-e, e a NF-e inteira é
//     abandonada.
//   - Cada item é resolvido por (empresa, descrição). Item sem cadastro gera
//     uma entrada não cadastrada; os demais itens da NF-e seguem normalmente.
//   - Item resolvido acumula na linha do registro completo, convertido para
//     toneladas, no bucket de importação (emitente em "EX") ou de mercado
//     interno.
//
// Mesmo após a primeira falha o lote inteiro é visitado, para que o usuário
// receba a lista completa de pendências de cadastro de uma vez.
func (p *Processor) Process(nfes []*entity.NFe) *Result {
	res := &Result{
		rows:      make(map[RegistrationKey]*AggregatedRow),
		totalNFes: len(nfes),
	}

	for _, nfe := range nfes {
		company := p.index.Company(nfe.Emitter.LegalName)
		if company == nil {
			for _, item := range nfe.Items {
				res.unregistered = append(res.unregistered, UnregisteredEntry{
					Kind:        MissCompany,
					CompanyName: nfe.Emitter.LegalName,
					ProductName: item.Description,
					NFeNumber:   nfe.Number,
					Quantity:    item.Quantity,
					Unit:        item.Unit,
				})
			}
			continue
		}

		isImport := IsImport(nfe)

		for _, item := range nfe.Items {
			product := p.index.Product(company.ID, item.Description)
			if product == nil {
				res.unregistered = append(res.unregistered, UnregisteredEntry{
					Kind:        MissProduct,
					CompanyName: nfe.Emitter.LegalName,
					ProductName: item.Description,
					NFeNumber:   nfe.Number,
					Quantity:    item.Quantity,
					Unit:        item.Unit,
				})
				continue
			}

			tonnes, unknown := ToTonnes(item.Quantity, item.Unit)
			if unknown {
				res.warnings = append(res.warnings, UnitWarning{
					Unit:       item.Unit,
					Normalized: NormalizeUnit(item.Unit),
					NFeNumber:  nfe.Number,
					ItemNumber: item.ItemNumber,
				})
			}

			key := NewRegistrationKey(company.MAPARegistration, product.MAPARegistration)
			row, ok := res.rows[key]
			if !ok {
				reference := product.Reference
				if reference == "" {
					reference = product.Name
				}
				row = &AggregatedRow{
					Key:              key,
					ProductName:      product.Name,
					ProductReference: reference,
					Unit:             CanonicalUnit,
					QuantityImport:   decimal.Zero,
					QuantityDomestic: decimal.Zero,
					sourceSet:        make(map[string]struct{}),
				}
				res.rows[key] = row
			}

			if isImport {
				row.QuantityImport = row.QuantityImport.Add(tonnes)
			} else {
				row.QuantityDomestic = row.QuantityDomestic.Add(tonnes)
			}
			row.addSource(nfe.Number)
		}
	}

	return res
}
