package cli

import (
	"fmt"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized storage at %s\n", ctx.Store.GetConfigPath())
	fmt.Println("Add your first question with 'trackdown question add'.")
	return nil
}
