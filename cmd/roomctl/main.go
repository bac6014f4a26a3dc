// Command roomctl is an interactive menu for managing users, rooms and
// assignments from a terminal. It drives the same service layer as the
// HTTP API, so both frontends apply identical rules.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/iliyamo/room-assignment/internal/config"
	"github.com/iliyamo/room-assignment/internal/database"
	"github.com/iliyamo/room-assignment/internal/repository"
	"github.com/iliyamo/room-assignment/internal/service"
)

type app struct {
	users       *service.UserService
	rooms       *service.RoomService
	assignments *service.AssignmentService
	board       *service.BoardService
	in          *bufio.Reader
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	userRepo := repository.NewUserRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	assignRepo := repository.NewAssignmentRepo(db)
	board := service.NewBoardService(db, userRepo, roomRepo, assignRepo)

	a := &app{
		users:       service.NewUserService(db, userRepo, assignRepo),
		rooms:       service.NewRoomService(db, roomRepo, assignRepo),
		assignments: service.NewAssignmentService(db, userRepo, roomRepo, assignRepo, board),
		board:       board,
		in:          bufio.NewReader(os.Stdin),
	}
	a.run()
}

func (a *app) run() {
	for {
		fmt.Println()
		fmt.Println("=== Room Assignment ===")
		fmt.Println(" 1) List users")
		fmt.Println(" 2) Create user")
		fmt.Println(" 3) Update user")
		fmt.Println(" 4) Delete user")
		fmt.Println(" 5) List rooms")
		fmt.Println(" 6) Create room")
		fmt.Println(" 7) Update room")
		fmt.Println(" 8) Delete room")
		fmt.Println(" 9) Show board")
		fmt.Println("10) Move user")
		fmt.Println(" 0) Exit")

		choice, ok := a.prompt("Choose: ")
		if !ok {
			fmt.Println()
			return
		}
		ctx := context.Background()
		switch choice {
		case "1":
			a.listUsers(ctx)
		case "2":
			a.createUser(ctx)
		case "3":
			a.updateUser(ctx)
		case "4":
			a.deleteUser(ctx)
		case "5":
			a.listRooms(ctx)
		case "6":
			a.createRoom(ctx)
		case "7":
			a.updateRoom(ctx)
		case "8":
			a.deleteRoom(ctx)
		case "9":
			a.showBoard(ctx)
		case "10":
			a.moveUser(ctx)
		case "0", "q":
			return
		default:
			fmt.Println("Unknown choice.")
		}
	}
}

// prompt reads one trimmed line; ok is false on EOF (ctrl-D).
func (a *app) prompt(label string) (string, bool) {
	fmt.Print(label)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (a *app) promptID(label string) (uint64, bool) {
	s, ok := a.prompt(label)
	if !ok || s == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		fmt.Println("Invalid id.")
		return 0, false
	}
	return id, true
}

func report(err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		fmt.Printf("Invalid input: %s.\n", ve.Error())
	case errors.Is(err, repository.ErrUserNotFound):
		fmt.Println("User not found.")
	case errors.Is(err, repository.ErrRoomNotFound):
		fmt.Println("Room not found.")
	case errors.Is(err, repository.ErrAssignmentNotFound):
		fmt.Println("Assignment not found.")
	case errors.Is(err, repository.ErrEmailExists):
		fmt.Println("Email already registered.")
	default:
		fmt.Printf("Error: %v\n", err)
	}
}

func (a *app) listUsers(ctx context.Context) {
	board, err := a.board.Board(ctx)
	if err != nil {
		report(err)
		return
	}
	if len(board.Palette) == 0 {
		fmt.Println("No users.")
		return
	}
	fmt.Println("\nUsers:")
	fmt.Println("======")
	for _, u := range board.Palette {
		room := "-"
		if u.RoomName != nil {
			room = *u.RoomName
		}
		fmt.Printf("ID: %d\nName: %s\nEmail: %s\nRoom: %s\n-\n", u.ID, u.Name, u.Email, room)
	}
}

func (a *app) createUser(ctx context.Context) {
	name, ok := a.prompt("Name: ")
	if !ok {
		return
	}
	email, ok := a.prompt("Email: ")
	if !ok {
		return
	}
	u, err := a.users.Create(ctx, name, email)
	if err != nil {
		report(err)
		return
	}
	fmt.Printf("User %s created with ID %d.\n", u.Name, u.ID)
}

func (a *app) updateUser(ctx context.Context) {
	id, ok := a.promptID("User ID: ")
	if !ok {
		return
	}
	u, err := a.users.Get(ctx, id)
	if err != nil {
		report(err)
		return
	}
	name, ok := a.prompt(fmt.Sprintf("New name (%s): ", u.Name))
	if !ok {
		return
	}
	email, ok := a.prompt(fmt.Sprintf("New email (%s): ", u.Email))
	if !ok {
		return
	}
	if name == "" && email == "" {
		fmt.Println("Nothing to change.")
		return
	}
	if _, err := a.users.Update(ctx, id, name, email); err != nil {
		report(err)
		return
	}
	fmt.Println("User updated.")
}

func (a *app) deleteUser(ctx context.Context) {
	id, ok := a.promptID("User ID: ")
	if !ok {
		return
	}
	u, err := a.users.Get(ctx, id)
	if err != nil {
		report(err)
		return
	}
	confirm, ok := a.prompt(fmt.Sprintf("Delete user %s? (y/N): ", u.Name))
	if !ok || !strings.EqualFold(confirm, "y") {
		fmt.Println("Cancelled.")
		return
	}
	if err := a.users.Delete(ctx, id); err != nil {
		report(err)
		return
	}
	fmt.Println("User deleted.")
}

func (a *app) listRooms(ctx context.Context) {
	board, err := a.board.Board(ctx)
	if err != nil {
		report(err)
		return
	}
	if len(board.Rooms) == 0 {
		fmt.Println("No rooms.")
		return
	}
	fmt.Println("\nRooms:")
	fmt.Println("======")
	for _, r := range board.Rooms {
		names := make([]string, 0, len(r.Users))
		for _, u := range r.Users {
			names = append(names, u.Name)
		}
		occupants := "-"
		if len(names) > 0 {
			occupants = strings.Join(names, ", ")
		}
		fmt.Printf("ID: %d\nName: %s\nOccupants: %s\n-\n", r.ID, r.Name, occupants)
	}
}

func (a *app) createRoom(ctx context.Context) {
	name, ok := a.prompt("Room name: ")
	if !ok {
		return
	}
	m, err := a.rooms.Create(ctx, name)
	if err != nil {
		report(err)
		return
	}
	fmt.Printf("Room %s created with ID %d.\n", m.Name, m.ID)
}

func (a *app) updateRoom(ctx context.Context) {
	id, ok := a.promptID("Room ID: ")
	if !ok {
		return
	}
	m, err := a.rooms.Get(ctx, id)
	if err != nil {
		report(err)
		return
	}
	name, ok := a.prompt(fmt.Sprintf("New name (%s): ", m.Name))
	if !ok {
		return
	}
	if name == "" {
		fmt.Println("Nothing to change.")
		return
	}
	if _, err := a.rooms.Update(ctx, id, name); err != nil {
		report(err)
		return
	}
	fmt.Println("Room updated.")
}

func (a *app) deleteRoom(ctx context.Context) {
	id, ok := a.promptID("Room ID: ")
	if !ok {
		return
	}
	m, err := a.rooms.Get(ctx, id)
	if err != nil {
		report(err)
		return
	}
	confirm, ok := a.prompt(fmt.Sprintf("Delete room %s? (y/N): ", m.Name))
	if !ok || !strings.EqualFold(confirm, "y") {
		fmt.Println("Cancelled.")
		return
	}
	if err := a.rooms.Delete(ctx, id); err != nil {
		report(err)
		return
	}
	fmt.Println("Room deleted. Its occupants are now unassigned.")
}

func (a *app) showBoard(ctx context.Context) {
	board, err := a.board.Board(ctx)
	if err != nil {
		report(err)
		return
	}
	fmt.Println("\nBoard:")
	fmt.Println("======")
	fmt.Print("unassigned: ")
	printCards(board.Unassigned)
	for _, r := range board.Rooms {
		fmt.Printf("%s: ", r.Name)
		if len(r.Users) == 0 {
			fmt.Println("-")
			continue
		}
		names := make([]string, 0, len(r.Users))
		for _, u := range r.Users {
			names = append(names, u.Name)
		}
		fmt.Println(strings.Join(names, ", "))
	}
}

func printCards(cards []service.UserCard) {
	if len(cards) == 0 {
		fmt.Println("-")
		return
	}
	names := make([]string, 0, len(cards))
	for _, c := range cards {
		names = append(names, c.Name)
	}
	fmt.Println(strings.Join(names, ", "))
}

// moveUser performs the same reconcile as a board drag: it resolves the
// user's current assignment (if any) and retargets, removes or creates
// it depending on the chosen destination.
func (a *app) moveUser(ctx context.Context) {
	userID, ok := a.promptID("User ID: ")
	if !ok {
		return
	}
	dest, ok := a.prompt("Room ID (blank to unassign): ")
	if !ok {
		return
	}
	var roomID *uint64
	if dest != "" {
		id, err := strconv.ParseUint(dest, 10, 64)
		if err != nil || id == 0 {
			fmt.Println("Invalid room id.")
			return
		}
		roomID = &id
	}

	board, err := a.board.Board(ctx)
	if err != nil {
		report(err)
		return
	}
	var assignmentID *uint64
	for _, r := range board.Rooms {
		for _, u := range r.Users {
			if u.UserID == userID {
				id := u.AssignmentID
				assignmentID = &id
				break
			}
		}
	}

	res, err := a.assignments.Reconcile(ctx, userID, roomID, assignmentID)
	if err != nil {
		report(err)
		return
	}
	switch res.Action {
	case service.MoveNoop:
		fmt.Println("Nothing to change.")
	case service.MoveRemoved:
		fmt.Println("User unassigned.")
	default:
		fmt.Println("Placement saved.")
	}
}
