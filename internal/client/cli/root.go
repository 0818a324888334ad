package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	if a.userName != "" {
		return fmt.Sprintf("(%s)", a.userName)
	}
	return ""
}

func (a *App) Run(ctx context.Context) {
	log.Println("Welcome to motoreg CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
