package repository

import (
	"log/slog"

	"conference-booking/internal/infra"
	"conference-booking/internal/pkg/pgconv"
)

func wrapErr(logger *slog.Logger, msg string, err error) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr(logger, infra.KindNotFound, msg, err)
	}
	return infra.WrapRepoErr(logger, infra.ClassifyPgError(err), msg, err)
}

func notFound(logger *slog.Logger, msg string) error {
	return infra.WrapRepoErr(logger, infra.KindNotFound, msg, nil)
}
