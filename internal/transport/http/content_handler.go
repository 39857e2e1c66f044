package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
)

// ContentHandler serves the CMS-style surfaces: banners, offers, judge
// panels, FAQs and time instructions. Public listings return approved items
// only; the admin listings take an optional status filter.
type ContentHandler struct {
	content *app.ContentService
}

func NewContentHandler(content *app.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

func (h *ContentHandler) CreateBanner(c *gin.Context) {
	var in app.BannerInput
	if !bindJSON(c, &in) {
		return
	}
	banner, err := h.content.CreateBanner(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Banner created", banner)
}

func (h *ContentHandler) GetBanner(c *gin.Context) {
	banner, err := h.content.GetBanner(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Banner retrieved", banner)
}

func (h *ContentHandler) ListApprovedBanners(c *gin.Context) {
	banners, err := h.content.ListBanners(c.Request.Context(), domain.ContentApproved)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Banners retrieved", banners)
}

func (h *ContentHandler) ListBanners(c *gin.Context) {
	banners, err := h.content.ListBanners(c.Request.Context(), domain.ContentStatus(c.Query("status")))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Banners retrieved", banners)
}

func (h *ContentHandler) UpdateBanner(c *gin.Context) {
	var in app.BannerInput
	if !bindJSON(c, &in) {
		return
	}
	banner, err := h.content.UpdateBanner(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Banner updated", banner)
}

func (h *ContentHandler) DeleteBanner(c *gin.Context) {
	if err := h.content.DeleteBanner(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Banner deleted", nil)
}

func (h *ContentHandler) CreateOffer(c *gin.Context) {
	var in app.OfferInput
	if !bindJSON(c, &in) {
		return
	}
	offer, err := h.content.CreateOffer(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Offer created", offer)
}

func (h *ContentHandler) GetOffer(c *gin.Context) {
	offer, err := h.content.GetOffer(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Offer retrieved", offer)
}

func (h *ContentHandler) ListApprovedOffers(c *gin.Context) {
	offers, err := h.content.ListOffers(c.Request.Context(), domain.ContentApproved)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Offers retrieved", offers)
}

func (h *ContentHandler) ListOffers(c *gin.Context) {
	offers, err := h.content.ListOffers(c.Request.Context(), domain.ContentStatus(c.Query("status")))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Offers retrieved", offers)
}

func (h *ContentHandler) UpdateOffer(c *gin.Context) {
	var in app.OfferInput
	if !bindJSON(c, &in) {
		return
	}
	offer, err := h.content.UpdateOffer(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Offer updated", offer)
}

func (h *ContentHandler) DeleteOffer(c *gin.Context) {
	if err := h.content.DeleteOffer(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Offer deleted", nil)
}

func (h *ContentHandler) CreateJudgePanel(c *gin.Context) {
	var in app.JudgePanelInput
	if !bindJSON(c, &in) {
		return
	}
	panel, err := h.content.CreateJudgePanel(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Judge panel created", panel)
}

func (h *ContentHandler) GetJudgePanel(c *gin.Context) {
	panel, err := h.content.GetJudgePanel(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Judge panel retrieved", panel)
}

func (h *ContentHandler) ListJudgePanels(c *gin.Context) {
	panels, err := h.content.ListJudgePanels(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Judge panels retrieved", panels)
}

func (h *ContentHandler) UpdateJudgePanel(c *gin.Context) {
	var in app.JudgePanelInput
	if !bindJSON(c, &in) {
		return
	}
	panel, err := h.content.UpdateJudgePanel(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Judge panel updated", panel)
}

func (h *ContentHandler) DeleteJudgePanel(c *gin.Context) {
	if err := h.content.DeleteJudgePanel(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Judge panel deleted", nil)
}

func (h *ContentHandler) CreateFAQ(c *gin.Context) {
	var in app.FAQInput
	if !bindJSON(c, &in) {
		return
	}
	faq, err := h.content.CreateFAQ(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "FAQ created", faq)
}

func (h *ContentHandler) GetFAQ(c *gin.Context) {
	faq, err := h.content.GetFAQ(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "FAQ retrieved", faq)
}

func (h *ContentHandler) ListApprovedFAQs(c *gin.Context) {
	faqs, err := h.content.ListFAQs(c.Request.Context(), domain.ContentApproved)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "FAQs retrieved", faqs)
}

// LatestFAQ returns the most recently created approved FAQ document.
func (h *ContentHandler) LatestFAQ(c *gin.Context) {
	faqs, err := h.content.ListFAQs(c.Request.Context(), domain.ContentApproved)
	if err != nil {
		writeError(c, err)
		return
	}
	if len(faqs) == 0 {
		writeError(c, domain.ErrContentNotFound)
		return
	}
	latest := faqs[0]
	for _, f := range faqs[1:] {
		if f.CreatedAt.After(latest.CreatedAt) {
			latest = f
		}
	}
	respond(c, http.StatusOK, "FAQ retrieved", latest)
}

func (h *ContentHandler) ListFAQs(c *gin.Context) {
	faqs, err := h.content.ListFAQs(c.Request.Context(), domain.ContentStatus(c.Query("status")))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "FAQs retrieved", faqs)
}

func (h *ContentHandler) UpdateFAQ(c *gin.Context) {
	var in app.FAQInput
	if !bindJSON(c, &in) {
		return
	}
	faq, err := h.content.UpdateFAQ(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "FAQ updated", faq)
}

func (h *ContentHandler) DeleteFAQ(c *gin.Context) {
	if err := h.content.DeleteFAQ(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "FAQ deleted", nil)
}

func (h *ContentHandler) CreateTimeInstruction(c *gin.Context) {
	var in app.TimeInstructionInput
	if !bindJSON(c, &in) {
		return
	}
	ti, err := h.content.CreateTimeInstruction(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Time instruction created", ti)
}

func (h *ContentHandler) GetTimeInstruction(c *gin.Context) {
	ti, err := h.content.GetTimeInstruction(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Time instruction retrieved", ti)
}

// LatestTimeInstruction backs the public page, which shows one document.
func (h *ContentHandler) LatestTimeInstruction(c *gin.Context) {
	all, err := h.content.ListTimeInstructions(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if len(all) == 0 {
		writeError(c, domain.ErrContentNotFound)
		return
	}
	latest := all[0]
	for _, ti := range all[1:] {
		if ti.CreatedAt.After(latest.CreatedAt) {
			latest = ti
		}
	}
	respond(c, http.StatusOK, "Time instruction retrieved", latest)
}

func (h *ContentHandler) ListTimeInstructions(c *gin.Context) {
	all, err := h.content.ListTimeInstructions(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Time instructions retrieved", all)
}

func (h *ContentHandler) UpdateTimeInstruction(c *gin.Context) {
	var in app.TimeInstructionInput
	if !bindJSON(c, &in) {
		return
	}
	ti, err := h.content.UpdateTimeInstruction(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Time instruction updated", ti)
}

func (h *ContentHandler) DeleteTimeInstruction(c *gin.Context) {
	if err := h.content.DeleteTimeInstruction(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Time instruction deleted", nil)
}
