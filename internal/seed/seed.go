// Package seed populates the database with demo data for local development.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"tripsync/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

var cityNames = []string{
	"Barcelona", "Lisbon", "Amsterdam", "Prague", "Vienna",
	"Copenhagen", "Budapest", "Porto", "Krakow", "Athens",
}

var placeCategories = []string{
	"Restaurant", "Museum", "Park", "Nightlife", "Beach",
}

// Seed populates the database with demo users, a friendship mesh, groups with
// messages and events, and a cities/places catalog.
func Seed(db *gorm.DB) error {
	log.Println("Starting database seeding...")
	gofakeit.Seed(42)

	if err := clearData(db); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}

	users, err := createUsers(db)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("Created %d users", len(users))

	friendships, err := createFriendships(db, users)
	if err != nil {
		return fmt.Errorf("failed to create friendships: %w", err)
	}
	log.Printf("Created %d friendships", friendships)

	cities, places, err := createCatalog(db)
	if err != nil {
		return fmt.Errorf("failed to create catalog: %w", err)
	}
	log.Printf("Created %d cities and %d places", cities, places)

	groups, err := createGroups(db, users)
	if err != nil {
		return fmt.Errorf("failed to create groups: %w", err)
	}
	log.Printf("Created %d groups with messages and events", groups)

	log.Println("Database seeding complete")
	return nil
}

// clearData removes existing rows in dependency order.
func clearData(db *gorm.DB) error {
	tables := []string{
		"event_participants", "calendar_events", "messages", "group_members",
		"chat_groups", "friendships", "places", "cities", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB) ([]models.User, error) {
	users := make([]models.User, 0, 15)
	for i := 0; i < 15; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		user := models.User{
			FirstName: first,
			LastName:  last,
			Username:  fmt.Sprintf("%s_%s%d", strings.ToLower(first), strings.ToLower(last), i),
			Email:     fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), i, gofakeit.DomainName()),
			Password:  gofakeit.Password(true, true, true, false, false, 12),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// createFriendships builds a mesh: each user gets accepted edges to the next
// few users and the occasional pending request further out.
func createFriendships(db *gorm.DB, users []models.User) (int, error) {
	count := 0
	for i := range users {
		for j := i + 1; j < len(users) && j <= i+3; j++ {
			status := models.FriendshipStatusAccepted
			if (i+j)%5 == 0 {
				status = models.FriendshipStatusPending
			}
			friendship := models.Friendship{
				RequesterID: users[i].ID,
				AddresseeID: users[j].ID,
				Status:      status,
			}
			if err := db.Create(&friendship).Error; err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func createCatalog(db *gorm.DB) (int, int, error) {
	placeCount := 0
	for _, name := range cityNames {
		city := models.City{CityName: name}
		if err := db.Create(&city).Error; err != nil {
			return 0, placeCount, err
		}

		for _, category := range placeCategories {
			n := 2 + rand.Intn(4)
			for p := 0; p < n; p++ {
				place := models.Place{
					Name:     placeName(category),
					Category: category,
					Address:  gofakeit.Street() + ", " + name,
					ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s%d/400/300", strings.ToLower(name), placeCount),
					CityID:   city.ID,
				}
				if err := db.Create(&place).Error; err != nil {
					return 0, placeCount, err
				}
				placeCount++
			}
		}
	}
	return len(cityNames), placeCount, nil
}

func placeName(category string) string {
	switch category {
	case "Restaurant":
		return gofakeit.Adjective() + " " + gofakeit.NounConcrete() + " Kitchen"
	case "Museum":
		return gofakeit.City() + " Museum of " + gofakeit.NounAbstract()
	case "Park":
		return gofakeit.LastName() + " Park"
	case "Nightlife":
		return "Club " + gofakeit.Color()
	case "Beach":
		return gofakeit.Adjective() + " Beach"
	}
	return gofakeit.Company()
}

// createGroups builds a few trip groups with members, chat history and an
// upcoming event each.
func createGroups(db *gorm.DB, users []models.User) (int, error) {
	groupNames := []string{"Summer Trip", "Weekend Getaway", "City Break Crew"}

	for g, name := range groupNames {
		creator := users[g]
		group := models.Group{Name: name, CreatedBy: creator.ID}
		if err := db.Create(&group).Error; err != nil {
			return g, err
		}

		members := []models.User{creator}
		for m := g + 1; m <= g+3 && m < len(users); m++ {
			members = append(members, users[m])
		}
		for _, member := range members {
			row := models.GroupMember{GroupID: group.ID, Username: member.Username}
			if err := db.Create(&row).Error; err != nil {
				return g, err
			}
		}

		for i := 0; i < 5; i++ {
			message := models.Message{
				GroupID: group.ID,
				Sender:  members[i%len(members)].Username,
				Body:    gofakeit.Sentence(8),
			}
			if err := db.Create(&message).Error; err != nil {
				return g, err
			}
		}

		start := time.Now().AddDate(0, 0, 7*(g+1))
		end := start.AddDate(0, 0, 3)
		event := models.CalendarEvent{
			Title:       name + " Planning",
			Description: gofakeit.Sentence(12),
			StartDate:   start,
			EndDate:     &end,
			Location:    cityNames[g%len(cityNames)],
			GroupID:     group.ID,
			CreatedBy:   creator.ID,
		}
		if err := db.Create(&event).Error; err != nil {
			return g, err
		}

		statuses := []models.ParticipantStatus{
			models.ParticipantStatusAttending,
			models.ParticipantStatusMaybe,
			models.ParticipantStatusDeclined,
		}
		for i, member := range members {
			status := models.ParticipantStatusAttending
			if i > 0 {
				status = statuses[i%len(statuses)]
			}
			participant := models.EventParticipant{
				EventID: event.ID,
				UserID:  member.ID,
				Status:  status,
			}
			if err := db.Create(&participant).Error; err != nil {
				return g, err
			}
		}
	}

	return len(groupNames), nil
}
