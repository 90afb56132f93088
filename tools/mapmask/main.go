package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sntrenter/AnimalWell-Helper/internal/domain"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "encode":
		if len(os.Args) < 3 {
			fmt.Println("Usage: mapmask encode <map.json>")
			return
		}
		grid, err := loadGrid(os.Args[2])
		if err != nil {
			fmt.Printf("Cannot read save: %v\n", err)
			return
		}
		fmt.Println(grid.EncodeMask())

	case "decode":
		if len(os.Args) < 3 {
			fmt.Println("Usage: mapmask decode <mask>")
			return
		}
		bits, err := domain.DecodeMask(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid mask: %v\n", err)
			return
		}
		grid := domain.NewGrid()
		grid.ApplyMask(bits)
		printGrid(grid)

	case "show":
		if len(os.Args) < 3 {
			fmt.Println("Usage: mapmask show <map.json>")
			return
		}
		grid, err := loadGrid(os.Args[2])
		if err != nil {
			fmt.Printf("Cannot read save: %v\n", err)
			return
		}
		printGrid(grid)
		fmt.Println("mask:", grid.EncodeMask())

	default:
		printHelp()
	}
}

// loadGrid читает файл сохранения и раскладывает его на сетку
func loadGrid(path string) (*domain.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var state struct {
		Revealed [][]int `json:"revealed"`
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	grid := domain.NewGrid()
	grid.ApplyRows(state.Revealed)
	return grid, nil
}

// printGrid рисует сетку в терминале: # - открытый экран, . - туман
func printGrid(g *domain.Grid) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			tile, _ := g.At(x, y)
			if tile.Revealed {
				fmt.Print("#")
			} else {
				fmt.Print(".")
			}
		}
		fmt.Println()
	}
	fmt.Printf("revealed: %d/%d\n", g.RevealedCount(), g.Width*g.Height)
}

func printHelp() {
	fmt.Println(`Map Mask Utility - работа с маской тумана
Commands:
  encode <map.json>  - напечатать base36-маску из файла сохранения
  decode <mask>      - нарисовать сетку по base36-маске
  show <map.json>    - нарисовать сетку из файла сохранения`)
}
