package main

import (
	"fmt"
	"log"
	"os"

	"lawlink/internal/database"
	"lawlink/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "lawlink.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM messages")
	db.Exec("DELETE FROM conversations")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM applications")
	db.Exec("DELETE FROM cases")
	db.Exec("DELETE FROM lawyer_profiles")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@lawlink.kz",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Administrator",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@lawlink.kz / admin123")

	clients := []domain.User{}
	clientNames := []string{"Asel Nurlanova", "Bekzat Serikov", "Dina Akhmetova"}
	for i, name := range clientNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
		client := domain.User{
			Email:        fmt.Sprintf("client%d@mail.kz", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleClient,
			Name:         name,
			Phone:        fmt.Sprintf("+7 777 123 45%02d", i+10),
		}
		db.Create(&client)
		clients = append(clients, client)
	}

	// ================== LAWYERS ==================
	log.Println("Creating lawyers...")

	type lawyerSeed struct {
		name           string
		specialization string
		city           string
		years          int
		rate           float64
	}
	seeds := []lawyerSeed{
		{"Aigerim Bekova", "Family Law", "Almaty", 8, 120},
		{"Marat Dzhaksybekov", "Corporate Law", "Astana", 12, 200},
		{"Saule Imanbaeva", "Criminal Defense", "Almaty", 5, 90},
		{"Timur Olzhasov", "Immigration Law", "Shymkent", 3, 60},
	}

	lawyerUsers := []domain.User{}
	for i, s := range seeds {
		hash, _ := bcrypt.GenerateFromPassword([]byte("lawyer123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        fmt.Sprintf("lawyer%d@lawlink.kz", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleLawyer,
			Name:         s.name,
		}
		db.Create(&u)
		lawyerUsers = append(lawyerUsers, u)

		profile := domain.LawyerProfile{
			UserID:          u.ID,
			Name:            s.name,
			Specialization:  s.specialization,
			City:            s.city,
			YearsExperience: s.years,
			HourlyRate:      s.rate,
			Bio:             fmt.Sprintf("%s with %d years of practice in %s.", s.specialization, s.years, s.city),
			Rating:          4.0 + float64(i)*0.2,
			TotalReviews:    3 * (i + 1),
		}
		db.Create(&profile)
	}

	// ================== CASES ==================
	log.Println("Creating cases...")

	divorce := domain.Case{
		ClientID:        clients[0].ID,
		CaseTitle:       "Divorce and custody arrangement",
		CaseDescription: "Need representation for divorce proceedings including child custody.",
		Status:          domain.CaseOpen,
		Priority:        domain.PriorityHigh,
		Category:        "Family Law",
		Tags:            []string{"divorce", "custody"},
		Milestones: []domain.Milestone{
			domain.NewMilestone(domain.MilestoneInput{
				Title:       "Initial consultation",
				Description: "Review documents and outline strategy",
				Amount:      150,
			}),
			domain.NewMilestone(domain.MilestoneInput{
				Title:       "File divorce petition",
				Description: "Prepare and file the petition with the court",
				Amount:      500,
			}),
		},
	}
	db.Create(&divorce)

	contract := domain.Case{
		ClientID:        clients[1].ID,
		CaseTitle:       "Supplier contract review",
		CaseDescription: "Review a 40-page supply agreement before signing.",
		Status:          domain.CaseOpen,
		Priority:        domain.PriorityMedium,
		Category:        "Corporate Law",
		Tags:            []string{"contract"},
		Milestones: []domain.Milestone{
			domain.NewMilestone(domain.MilestoneInput{
				Title:       "Contract review",
				Description: "Full review with written risk summary",
				Amount:      300,
			}),
		},
	}
	db.Create(&contract)

	assigned := domain.Case{
		ClientID:         clients[2].ID,
		CaseTitle:        "Work visa application",
		CaseDescription:  "Assistance with a work visa application and relocation paperwork.",
		Status:           domain.CaseInProgress,
		Priority:         domain.PriorityLow,
		Category:         "Immigration Law",
		AssignedLawyerID: &lawyerUsers[3].ID,
		Milestones: []domain.Milestone{
			domain.NewMilestone(domain.MilestoneInput{
				Title:  "Document collection",
				Amount: 100,
				Status: domain.MilestoneInProgress,
			}),
		},
	}
	db.Create(&assigned)

	app := domain.Application{
		CaseID:     assigned.ID,
		LawyerID:   lawyerUsers[3].ID,
		LawyerName: lawyerUsers[3].Name,
		Proposal:   "I handle work visa cases weekly and can start immediately.",
		Status:     domain.ApplicationAccepted,
	}
	db.Create(&app)

	log.Println("Seed complete.")
	log.Printf("Users: 1 admin, %d clients, %d lawyers", len(clients), len(lawyerUsers))
	log.Println("Cases: 2 open, 1 assigned")
}
