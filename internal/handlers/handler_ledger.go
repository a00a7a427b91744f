package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zonebms/zone_backend/internal/core/ports/services"
	"github.com/zonebms/zone_backend/internal/dto"
	"github.com/zonebms/zone_backend/internal/middleware"
)

// ledgerHandler handles HTTP requests for the chart of accounts and journal.
type ledgerHandler struct {
	ledger portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledger portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledger: ledger}
}

// registerLedgerRoutes registers read routes for accounts and journal
// entries. Postings themselves happen only through document transitions.
func registerLedgerRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledger)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:code", h.getAccount)
	}

	entries := rg.Group("/journal-entries")
	{
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
	}
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists every chart-of-accounts entry with its running balance
// @Tags ledger
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
func (h *ledgerHandler) listAccounts(c *gin.Context) {
	accounts, err := h.ledger.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// getAccount godoc
// @Summary Get an account
// @Description Fetches one account by its well-known code
// @Tags ledger
// @Produce  json
// @Param   code path string true "Account code"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
func (h *ledgerHandler) getAccount(c *gin.Context) {
	account, err := h.ledger.GetAccountByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists posted journal entries, newest first, optionally filtered by originating document
// @Tags ledger
// @Produce  json
// @Param   document_id query string false "Filter by originating document id"
// @Param   limit query int false "Maximum results"
// @Success 200 {array} dto.JournalEntryResponse
// @Security BearerAuth
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for journal entry list", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.ledger.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListJournalEntryResponse(entries))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Fetches one posted journal entry by id
// @Tags ledger
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
func (h *ledgerHandler) getEntry(c *gin.Context) {
	entry, err := h.ledger.GetEntryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}
