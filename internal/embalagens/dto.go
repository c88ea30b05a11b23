package embalagens

import (
	"time"

	"github.com/google/uuid"

	"github.com/estoquelab/embalagens-backend/pkg/db/models"
)

// EmbalagemDTO is the transport shape of a catalog item.
type EmbalagemDTO struct {
	ID              uuid.UUID `json:"id"`
	Material        string    `json:"material"`
	Produto         string    `json:"produto"`
	Marca           string    `json:"marca"`
	Pais            string    `json:"pais"`
	CodigoBarras    *string   `json:"codigoBarras,omitempty"`
	TipoEmbalagem   *string   `json:"tipoEmbalagem,omitempty"`
	SeraUtilizadoEm *string   `json:"seraUtilizadoEm,omitempty"`
	Observacoes     *string   `json:"observacoes,omitempty"`

	Deletado         bool       `json:"deletado"`
	DataDelecao      *time.Time `json:"dataDelecao,omitempty"`
	UsuarioDelecaoID *uuid.UUID `json:"usuarioDelecaoId,omitempty"`
	MotivoDelecao    *string    `json:"motivoDelecao,omitempty"`

	UsuarioCriadorID     uuid.UUID  `json:"usuarioCriadorId"`
	UsuarioAtualizadorID *uuid.UUID `json:"usuarioAtualizadorId,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// FotoDTO is the transport shape of a packaging photo.
type FotoDTO struct {
	ID              uuid.UUID `json:"id"`
	EmbalagemID     uuid.UUID `json:"embalagemId"`
	LinkDrive       string    `json:"linkDrive"`
	Descricao       *string   `json:"descricao,omitempty"`
	Ordem           int       `json:"ordem"`
	UsuarioUploadID uuid.UUID `json:"usuarioUploadId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// VinculoLocalizacaoDTO summarizes where (and how many) units of an
// item are stored.
type VinculoLocalizacaoDTO struct {
	LocalizacaoID uuid.UUID `json:"localizacaoId"`
	CaixaSigla    string    `json:"caixaSigla"`
	Galpao        string    `json:"galpao"`
	Andar         string    `json:"andar"`
	Prateleira    string    `json:"prateleira"`
	Quantidade    int       `json:"quantidade"`
}

// EmbalagemDetailDTO is the item plus its photos and storage links.
type EmbalagemDetailDTO struct {
	EmbalagemDTO
	Fotos        []FotoDTO               `json:"fotos"`
	Localizacoes []VinculoLocalizacaoDTO `json:"localizacoes"`
}

// CreateEmbalagemInput holds the validated payload to create an item.
type CreateEmbalagemInput struct {
	Material        string
	Produto         string
	Marca           string
	Pais            string
	CodigoBarras    *string
	TipoEmbalagem   *string
	SeraUtilizadoEm *string
	Observacoes     *string
}

// UpdateEmbalagemInput holds optional mutation values for an item.
type UpdateEmbalagemInput struct {
	Material        *string
	Produto         *string
	Marca           *string
	Pais            *string
	CodigoBarras    *string
	TipoEmbalagem   *string
	SeraUtilizadoEm *string
	Observacoes     *string
}

// ListFilter narrows the catalog listing. Exact matches and substring
// filters combine with AND; Busca scans produto, marca, and
// codigo_barras at once.
type ListFilter struct {
	Material        *string
	Pais            *string
	TipoEmbalagem   *string
	Marca           *string
	SeraUtilizadoEm *string
	Busca           *string
	Deletado        *bool
	Limit           int
	Offset          int
}

// AddFotoInput holds the payload to attach a photo to an item.
type AddFotoInput struct {
	LinkDrive string
	Descricao *string
	Ordem     *int
}

func FromModel(e *models.Embalagem) *EmbalagemDTO {
	if e == nil {
		return nil
	}
	return &EmbalagemDTO{
		ID:                   e.ID,
		Material:             e.Material,
		Produto:              e.Produto,
		Marca:                e.Marca,
		Pais:                 e.Pais,
		CodigoBarras:         e.CodigoBarras,
		TipoEmbalagem:        e.TipoEmbalagem,
		SeraUtilizadoEm:      e.SeraUtilizadoEm,
		Observacoes:          e.Observacoes,
		Deletado:             e.Deletado,
		DataDelecao:          e.DataDelecao,
		UsuarioDelecaoID:     e.UsuarioDelecaoID,
		MotivoDelecao:        e.MotivoDelecao,
		UsuarioCriadorID:     e.UsuarioCriadorID,
		UsuarioAtualizadorID: e.UsuarioAtualizadorID,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func FromModels(rows []models.Embalagem) []EmbalagemDTO {
	out := make([]EmbalagemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func fotoFromModel(f *models.FotoEmbalagem) *FotoDTO {
	if f == nil {
		return nil
	}
	return &FotoDTO{
		ID:              f.ID,
		EmbalagemID:     f.EmbalagemID,
		LinkDrive:       f.LinkDrive,
		Descricao:       f.Descricao,
		Ordem:           f.Ordem,
		UsuarioUploadID: f.UsuarioUploadID,
		CreatedAt:       f.CreatedAt,
	}
}

func fotosFromModels(rows []models.FotoEmbalagem) []FotoDTO {
	out := make([]FotoDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *fotoFromModel(&rows[i]))
	}
	return out
}
