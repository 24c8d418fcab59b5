package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vfg2006/branch-analytics-api/infrastructure/dataset"
	"github.com/vfg2006/branch-analytics-api/infrastructure/excel"
	"github.com/vfg2006/branch-analytics-api/internal/config"
	"github.com/vfg2006/branch-analytics-api/internal/domain"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/branch-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/branch-analytics-api/pkg/log"
)

const uploadFormField = "files"

// UploadResponse descreve o resultado do processamento dos arquivos enviados
type UploadResponse struct {
	Dataset domain.DatasetInfo `json:"dataset"`
	Skipped []string           `json:"skipped_files,omitempty"`
}

// UploadFiles recebe as planilhas, valida extensão e tamanho, grava cada
// arquivo no diretório de uploads, carrega os registros e substitui o dataset
// inteiro de forma atômica. A seleção ativa do dashboard é zerada: ela
// pertencia ao dataset anterior. Os arquivos gravados são removidos depois
// pela rotina de limpeza agendada.
func UploadFiles(cfg *config.Config, loader *excel.Loader, store *dataset.Store, selection *analyzing.Selection) http.HandlerFunc {
	allowed := cfg.Upload.AllowedExtensionList()
	maxBytes := cfg.Upload.MaxFileSizeBytes()
	uploadDir := cfg.Upload.Dir

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, "Falha ao ler o formulário de upload", nil)
			return
		}

		files := r.MultipartForm.File[uploadFormField]
		if len(files) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrNoFilesUploaded, "Nenhum arquivo enviado", nil)
			return
		}

		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("upload: failed to create upload dir")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Falha ao preparar o diretório de uploads", nil)
			return
		}

		var uploads []excel.Upload
		for _, fh := range files {
			if !extensionAllowed(fh.Filename, allowed) {
				apiErrors.WriteError(w, apiErrors.ErrUnsupportedFileType, "Extensão não suportada", map[string]string{"filename": fh.Filename})
				return
			}
			if fh.Size > maxBytes {
				apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, "Arquivo acima do limite", map[string]string{"filename": fh.Filename})
				return
			}

			saved, err := saveUpload(uploadDir, fh)
			if err != nil {
				log.ForContext(r.Context()).WithError(err).Error("upload: failed to persist multipart file")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Falha ao gravar o arquivo enviado", nil)
				return
			}
			defer saved.Close()

			uploads = append(uploads, excel.Upload{Filename: fh.Filename, Reader: saved})
		}

		result, err := loader.LoadFiles(r.Context(), uploads)
		if err != nil {
			if errors.Is(err, excel.ErrNoValidData) {
				apiErrors.WriteError(w, apiErrors.ErrNoValidData, "Nenhum dado válido nos arquivos enviados", nil)
				return
			}
			log.ForContext(r.Context()).WithError(err).Error("upload: failed to load files")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Falha ao processar os arquivos", nil)
			return
		}

		info := store.Replace(result.Records, result.Files)
		selection.Reset()

		log.ForContext(r.Context()).WithFields(log.Fields{
			"version":  info.Version,
			"records":  info.TotalRecords,
			"branches": len(info.Branches),
			"skipped":  len(result.Skipped),
		}).Info("upload: dataset replaced")

		respondJSON(w, UploadResponse{Dataset: info, Skipped: result.Skipped})
	}
}

// GetDataset retorna os metadados do dataset carregado
func GetDataset(store *dataset.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !store.Loaded() {
			apiErrors.WriteError(w, apiErrors.ErrNoDatasetLoaded, "Nenhum dataset carregado; envie os arquivos primeiro", nil)
			return
		}

		respondJSON(w, store.Info())
	}
}

// ClearDataset descarta o dataset carregado e zera a seleção
func ClearDataset(store *dataset.Store, selection *analyzing.Selection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.Clear()
		selection.Reset()

		log.ForContext(r.Context()).Info("dataset cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}

// saveUpload grava o arquivo recebido no diretório de uploads e o reabre para
// leitura. O nome ganha um prefixo de timestamp para evitar colisões entre
// envios com o mesmo nome de planilha.
func saveUpload(uploadDir string, fh *multipart.FileHeader) (*os.File, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(fh.Filename))
	path := filepath.Join(uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return nil, err
	}
	if err := dst.Close(); err != nil {
		return nil, err
	}

	return os.Open(path)
}

func extensionAllowed(filename string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
