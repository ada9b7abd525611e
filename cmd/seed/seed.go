package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/apperr"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/movie"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/movie/service"
)

type skipped struct {
	Index  int
	Reason string
}

type seedResult struct {
	Created int
	Skipped []skipped
}

// seedMovies creates every entry of a JSON array through the service, so
// the same field rules apply as for the HTTP API. Invalid entries are
// skipped; any other failure aborts.
func seedMovies(ctx context.Context, svc *service.Service, r io.Reader) (seedResult, error) {
	var res seedResult
	var entries []movie.CreateInput
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return res, fmt.Errorf("decode seed file: %w", err)
	}
	for i, in := range entries {
		if _, err := svc.Create(ctx, in); err != nil {
			if apperr.Is(err, apperr.KindValidation) {
				res.Skipped = append(res.Skipped, skipped{Index: i, Reason: apperr.PublicMessage(err)})
				continue
			}
			return res, fmt.Errorf("create movie #%d: %w", i, err)
		}
		res.Created++
	}
	return res, nil
}
