package handlers

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/michael-h-patrianna/plinko-sub001/internal/game"
)

// randomSeed draws a non-negative seed from the OS entropy pool. Only used
// when a client does not pin one; everything downstream is deterministic in
// the seed.
func randomSeed() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0
	}
	v := int64(binary.BigEndian.Uint64(b[:]) &^ (1 << 63))
	return v
}

// respondEngineError maps engine errors to HTTP statuses: malformed configs
// are client errors, exhausted solver retries are a 422 with the failure
// detail, anything else is a 500.
func respondEngineError(c *gin.Context, err error) {
	var cfgErr *game.ConfigError
	if errors.As(err, &cfgErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": cfgErr.Error(), "field": cfgErr.Field})
		return
	}
	var tErr *game.TargetUnreachableError
	if errors.As(err, &tErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    tErr.Error(),
			"target":   tErr.Target,
			"attempts": tErr.Attempts,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
