package controllers

import (
	"net/http"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/models"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/services"

	"github.com/gin-gonic/gin"
)

// ScanController turns an already-decoded barcode (camera decoding happens on
// the device) or a product photo into a prefilled ingredient.
type ScanController struct {
	products  *services.ProductClient
	rek       *services.RekognitionService
	api       *services.RecipeAPIClient
	analytics services.Analytics
}

func NewScanController(
	products *services.ProductClient,
	rek *services.RekognitionService,
	api *services.RecipeAPIClient,
	analytics services.Analytics,
) *ScanController {
	return &ScanController{products: products, rek: rek, api: api, analytics: analytics}
}

// POST /scan/barcode  { "barcode": "4890008100309" }
// Returns an ingredient prefill; the instance id is assigned only on save.
func (sc *ScanController) Barcode(c *gin.Context) {
	var input struct {
		Barcode string `json:"barcode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := sc.products.LookupBarcode(c.Request.Context(), input.Barcode)
	if err != nil {
		respondError(c, err)
		return
	}

	sc.analytics.Event("barcode_scan", input.Barcode)
	c.JSON(http.StatusOK, gin.H{
		"product": product,
		"prefill": models.Ingredient{
			CatalogID: product.Barcode,
			Name:      product.Name,
			Quantity:  1,
			Unit:      "pcs",
			ImageURL:  product.ImageURL,
			Calories:  product.Calories,
			Fat:       product.Fat,
		},
	})
}

// POST /scan/photo  { "image_base64": "data:image/jpeg;base64,..." }
// Labels the photo and searches the food database with the top label.
func (sc *ScanController) Photo(c *gin.Context) {
	var input struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	labels, err := sc.rek.RecognizeLabels(c.Request.Context(), input.ImageBase64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(labels) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no labels detected"})
		return
	}

	foods, err := sc.api.SearchFoods(c.Request.Context(), labels[0])
	if err != nil {
		respondError(c, err)
		return
	}

	sc.analytics.Event("photo_scan", labels[0])
	c.JSON(http.StatusOK, gin.H{"label": labels[0], "candidates": foods})
}
