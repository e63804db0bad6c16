package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go-clinic-management/cmd/bootstrap"
	"go-clinic-management/config"
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/repository"
	"go-clinic-management/internal/service"
	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/jwt"
	"go-clinic-management/pkg/validator"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const minPasswordLength = 6

func main() {
	name := pflag.StringP("name", "n", "", "full name of the administrator")
	email := pflag.StringP("email", "e", "", "login email")
	role := pflag.StringP("role", "r", "admin", "account role: admin or superadmin")
	pflag.Parse()

	if err := run(*name, *email, *role); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(name, email, role string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := bootstrap.NewLogger(cfg.App)
	log.SetOutput(io.Discard)

	fmt.Println("=== Create a Superuser ===")
	fd := int(os.Stdin.Fd())
	prompt := newPrompter(os.Stdin, os.Stdout, fd, term.IsTerminal(fd))

	if name == "" {
		if name, err = prompt.line("Full Name: "); err != nil {
			return err
		}
	}
	if email == "" {
		if email, err = prompt.line("Email: "); err != nil {
			return err
		}
	}
	password, err := prompt.confirmedPassword()
	if err != nil {
		return err
	}

	req := &dto.CreateSuperuserRequest{Name: name, Email: email, Password: password, Role: role}
	v := validator.NewValidator()
	if err := v.Validate(req); err != nil {
		return errors.New(v.FirstError(err))
	}

	db, err := bootstrap.OpenDatabase(cfg.DB, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Creating an account never starts a session, so an in-process store is enough.
	sessions := service.NewSessionService(jwt.NewJWTService(cfg.App.SecretKey, cfg.Session.TTL), service.NewMemorySessionStore(), log)
	authUsecase := usecase.NewAuthUsecase(db, log, repository.NewUserRepository(), sessions)

	user, err := authUsecase.CreateSuperuser(context.Background(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			return fmt.Errorf("user with email '%s' already exists", email)
		}
		return err
	}

	fmt.Printf("Superuser '%s' created successfully!\n", user.Name)
	return nil
}

type prompter struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	hidden bool
}

// newPrompter reads answers from in. With hidden set, passwords are read from
// the terminal behind fd without echo.
func newPrompter(in io.Reader, out io.Writer, fd int, hidden bool) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out, fd: fd, hidden: hidden}
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	text, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && text != "") {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (p *prompter) password(label string) (string, error) {
	if !p.hidden {
		return p.line(label)
	}

	fmt.Fprint(p.out, label)
	secret, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

// confirmedPassword asks until both entries match and meet the minimum length.
func (p *prompter) confirmedPassword() (string, error) {
	for {
		password, err := p.password("Password: ")
		if err != nil {
			return "", err
		}
		confirm, err := p.password("Confirm Password: ")
		if err != nil {
			return "", err
		}

		switch {
		case password != confirm:
			fmt.Fprintln(p.out, "Passwords do not match. Try again.")
		case len(password) < minPasswordLength:
			fmt.Fprintf(p.out, "Password too short, minimum %d characters.\n", minPasswordLength)
		default:
			return password, nil
		}
	}
}
