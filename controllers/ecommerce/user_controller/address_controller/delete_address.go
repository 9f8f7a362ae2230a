package address_controller

import (
	"log"
	"net/http"

	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeleteAddress godoc
// @Summary Delete address
// @Description Soft delete an address (sets status to 'deleted'). If deleting the default address, the oldest remaining active address becomes the new default. Placed orders keep their address snapshot.
// @Tags User - Addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Address ID"
// @Success 200 {object} models.ApiResponse "Address deleted successfully"
// @Failure 400 {object} models.ApiResponse "Invalid request"
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 403 {object} models.ApiResponse "Forbidden"
// @Failure 404 {object} models.ApiResponse "Address not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /user/addresses/{id} [delete]
func DeleteAddress(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	addressID := c.Param("id")
	if _, err := uuid.Parse(addressID); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid address ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Find address and verify ownership
	var address models.Address
	if err := config.Gorm.WithContext(ctx).
		Where("id = ?", addressID).
		First(&address).Error; err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Address not found"))
		return
	}

	if address.UserID != userID.(string) {
		c.JSON(http.StatusForbidden, models.ErrorResponse(c, "You don't have permission to delete this address"))
		return
	}

	// Deletion and default reassignment happen atomically
	err := config.Gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wasDefault := address.IsDefault

		if err := tx.Model(&address).
			Update("status", "deleted").Error; err != nil {
			return err
		}

		// If we just deleted the default address, promote the oldest
		// remaining active one.
		if wasDefault {
			var newDefault models.Address
			err := tx.Where("user_id = ? AND status = ? AND id != ?", userID, "active", addressID).
				Order("created_at ASC").
				First(&newDefault).Error

			if err == nil {
				if err := tx.Model(&newDefault).
					Update("is_default", true).Error; err != nil {
					return err
				}
				log.Printf("✅ New default address set: %s (oldest) for user: %s", newDefault.ID, userID)
			} else if err != gorm.ErrRecordNotFound {
				return err
			}
			// No other addresses is fine.
		}

		return nil
	})
	if err != nil {
		log.Printf("❌ Failed to delete address: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete address"))
		return
	}

	log.Printf("✅ Address deleted: %s for user: %s", addressID, userID)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Address deleted successfully",
		nil,
	))
}
