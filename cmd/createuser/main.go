// Command createuser provisions a back-office account interactively.
// There is no self-service signup; accounts are created by an operator.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/yaoyun631/team-me-crm-firebase/internal/models"
	"github.com/yaoyun631/team-me-crm-firebase/internal/repositories"
	"github.com/yaoyun631/team-me-crm-firebase/pkg/config"
	"github.com/yaoyun631/team-me-crm-firebase/pkg/firebase"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	app, err := firebase.InitFirebase(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	defer app.Close()

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.ToLower(strings.TrimSpace(email))

	fmt.Print("Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	fmt.Print("Password: ")
	pwBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	password := string(pwBytes)

	if email == "" || password == "" {
		log.Fatal("Email / Password 不可空白")
	}

	users := repositories.NewFirestoreUserRepository(app.Firestore)
	if _, err := users.GetUserByEmail(ctx, email); err == nil {
		log.Fatal("此 Email 已存在")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		log.Fatalf("Failed to look up user: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if name == "" {
		name = email
	}
	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    models.NowISO(),
	}
	if _, err := users.CreateUser(ctx, user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Println("使用者建立完成")
}
