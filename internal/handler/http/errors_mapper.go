package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/mn-config/internal/service"
	"github.com/MKhiriev/mn-config/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrUnknownScopeType: http.StatusBadRequest,

	store.ErrVersionConflict: http.StatusConflict,

	store.ErrEncodingValue:   http.StatusInternalServerError,
	store.ErrDecodingValue:   http.StatusInternalServerError,
	store.ErrPersistingStore: http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
