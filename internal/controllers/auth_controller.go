package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lightpath/internal/config"
	"lightpath/internal/hooks"
	"lightpath/internal/middleware"
	"lightpath/internal/models"
)

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// Register creates a user, links the requested role and, for
// passengers, creates the profile in the same transaction. Post-commit
// hooks fire only after the transaction lands.
func Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roleName, err := validateAndNormalizeRole(input.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	var user models.User
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.Where("name = ?", roleName).First(&role).Error; err != nil {
			return err
		}
		user = models.User{
			Name:     input.Name,
			Email:    input.Email,
			Password: string(hash),
			RoleID:   &role.ID,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if roleName == models.RolePassenger {
			passenger := models.Passenger{
				UserID:   user.ID,
				FullName: input.Name,
				// Email doubles as the initial unique handle.
				Username: input.Email,
			}
			if err := tx.Create(&passenger).Error; err != nil {
				return err
			}
			user.Passenger = &passenger
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user: " + err.Error()})
		return
	}

	hooks.Default.Fire(hooks.UserCreated{UserID: user.ID, Email: user.Email, Role: roleName})

	token, err := middleware.GenerateToken(user.ID, roleName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  roleName,
		},
	})
}

func Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	query := config.DB.Where("email = ?", body.Email).
		Preload("Role").
		Preload("Passenger").
		Preload("Conductor")
	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect password"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.RoleName())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// RefreshToken re-issues a token for the already-authenticated caller.
func RefreshToken(c *gin.Context) {
	userID := uint(c.MustGet("user_id").(float64))
	role, _ := c.MustGet("role").(string)

	token, err := middleware.GenerateToken(userID, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetProfile returns the caller's account with profile links.
func GetProfile(c *gin.Context) {
	userID := uint(c.MustGet("user_id").(float64))

	var user models.User
	err := config.DB.Preload("Role").Preload("Passenger").Preload("Conductor").First(&user, userID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile patches the caller's passenger profile fields.
func UpdateProfile(c *gin.Context) {
	userID := uint(c.MustGet("user_id").(float64))

	var passenger models.Passenger
	if err := config.DB.Where("user_id = ?", userID).First(&passenger).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passenger profile does not exist"})
		return
	}

	var input struct {
		FullName      *string `json:"full_name"`
		ContactNumber *string `json:"contact_number"`
		Username      *string `json:"username"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.FullName != nil {
		passenger.FullName = *input.FullName
	}
	if input.ContactNumber != nil {
		passenger.ContactNumber = *input.ContactNumber
	}
	if input.Username != nil {
		passenger.Username = *input.Username
	}

	if err := config.DB.Save(&passenger).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"passenger": passenger})
}

func validateAndNormalizeRole(roleInput string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(roleInput))
	if role == "" {
		role = models.RolePassenger
	}
	switch role {
	case models.RoleAdmin, models.RolePassenger, models.RoleConductor:
		return role, nil
	default:
		return "", errors.New("invalid role")
	}
}

// ListUsers is an admin-only listing of all accounts.
func ListUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Preload("Role").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error listing users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

// ListPassengers is an admin-only listing of passenger profiles.
func ListPassengers(c *gin.Context) {
	var passengers []models.Passenger
	if err := config.DB.Find(&passengers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error listing passengers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": passengers})
}
