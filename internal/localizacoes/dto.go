package localizacoes

import (
	"time"

	"github.com/google/uuid"

	"github.com/estoquelab/embalagens-backend/pkg/db/models"
)

// LocalizacaoDTO is the transport shape of a storage slot.
type LocalizacaoDTO struct {
	ID                   uuid.UUID `json:"id"`
	Galpao               string    `json:"galpao"`
	Andar                string    `json:"andar"`
	Prateleira           string    `json:"prateleira"`
	CaixaSigla           string    `json:"caixaSigla"`
	QRCodeData           *string   `json:"qrCodeData,omitempty"`
	QuantidadeEmbalagens int       `json:"quantidadeEmbalagens"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// CreateLocalizacaoInput holds the validated payload to create a slot.
type CreateLocalizacaoInput struct {
	Galpao     string
	Andar      string
	Prateleira string
	CaixaSigla string
	QRCodeData *string
}

// UpdateLocalizacaoInput holds optional mutation values for a slot.
type UpdateLocalizacaoInput struct {
	Galpao     *string
	Andar      *string
	Prateleira *string
	CaixaSigla *string
	QRCodeData *string
}

// VinculoDTO is one (embalagem, localizacao) quantity link.
type VinculoDTO struct {
	ID            uuid.UUID `json:"id"`
	EmbalagemID   uuid.UUID `json:"embalagemId"`
	LocalizacaoID uuid.UUID `json:"localizacaoId"`
	Quantidade    int       `json:"quantidade"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EmbalagemNaCaixaDTO is a stored item as seen from a location.
type EmbalagemNaCaixaDTO struct {
	EmbalagemID  uuid.UUID `json:"embalagemId"`
	Produto      string    `json:"produto"`
	Marca        string    `json:"marca"`
	Material     string    `json:"material"`
	Pais         string    `json:"pais"`
	CodigoBarras *string   `json:"codigoBarras,omitempty"`
	Quantidade   int       `json:"quantidade"`
}

// LocalizacaoDaEmbalagemDTO is a storage slot as seen from an item.
type LocalizacaoDaEmbalagemDTO struct {
	LocalizacaoID uuid.UUID `json:"localizacaoId"`
	CaixaSigla    string    `json:"caixaSigla"`
	Galpao        string    `json:"galpao"`
	Andar         string    `json:"andar"`
	Prateleira    string    `json:"prateleira"`
	Quantidade    int       `json:"quantidade"`
}

func FromModel(l *models.Localizacao) *LocalizacaoDTO {
	if l == nil {
		return nil
	}
	return &LocalizacaoDTO{
		ID:                   l.ID,
		Galpao:               l.Galpao,
		Andar:                l.Andar,
		Prateleira:           l.Prateleira,
		CaixaSigla:           l.CaixaSigla,
		QRCodeData:           l.QRCodeData,
		QuantidadeEmbalagens: l.QuantidadeEmbalagens,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
}

func FromModels(rows []models.Localizacao) []LocalizacaoDTO {
	out := make([]LocalizacaoDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func vinculoFromModel(v *models.EmbalagemLocalizacao) *VinculoDTO {
	if v == nil {
		return nil
	}
	return &VinculoDTO{
		ID:            v.ID,
		EmbalagemID:   v.EmbalagemID,
		LocalizacaoID: v.LocalizacaoID,
		Quantidade:    v.Quantidade,
		UpdatedAt:     v.UpdatedAt,
	}
}
