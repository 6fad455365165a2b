package session

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/homechef/internal/domain"
	"github.com/kailas-cloud/homechef/internal/domain/conversation"
)

const (
	msgChatError       = "Terjadi kesalahan: %v. Coba reset chat atau cek API Key Anda."
	msgVisionError     = "Terjadi kesalahan saat pemrosesan gambar: %v"
	msgDocumentError   = "Terjadi kesalahan pada pemrosesan PDF: %v"
	msgExtractionError = "Gagal mengekstrak teks dari PDF. Pastikan isinya adalah teks yang dapat dipilih."
	msgDocumentReady   = "E-Book '%s' telah diolah! Sekarang, tanyakan resep atau bahan apa yang harus Anda gunakan."
)

// classify maps a failure to the kind shown on the turn. Quota wins because
// a rejected budget is wrapped by whichever service made the call.
func classify(err error) conversation.ErrorKind {
	switch {
	case errors.Is(err, domain.ErrQuotaExceeded):
		return conversation.ErrorQuota
	case errors.Is(err, domain.ErrExtraction):
		return conversation.ErrorExtraction
	case errors.Is(err, domain.ErrEmbeddingService):
		return conversation.ErrorEmbedding
	case errors.Is(err, domain.ErrGeneration):
		return conversation.ErrorGeneration
	case errors.Is(err, domain.ErrEmptyInput):
		return conversation.ErrorEmptyInput
	default:
		return conversation.ErrorInternal
	}
}

func failureTurn(format string, err error) conversation.Turn {
	return conversation.ErrorTurn(classify(err), fmt.Sprintf(format, err))
}

func ingestFailureTurn(err error) conversation.Turn {
	if errors.Is(err, domain.ErrExtraction) {
		return conversation.ErrorTurn(conversation.ErrorExtraction, msgExtractionError)
	}
	return failureTurn(msgDocumentError, err)
}

func documentReadyTurn(name string) conversation.Turn {
	return conversation.AssistantTurn(fmt.Sprintf(msgDocumentReady, name))
}
