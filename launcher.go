//go:build ignore

// Локальный запуск: поднимает сервер и собирает authctl.
//
//	go run launcher.go
package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"
)

func main() {
	fmt.Println("Запуск authflow...")

	clientName := "authctl"
	if runtime.GOOS == "windows" {
		clientName = "authctl.exe"
	}

	configPath := "configs/server.yaml"
	if p := os.Getenv("AUTHFLOW_CONFIG"); p != "" {
		configPath = p
	}

	// сервер на фоне
	server := exec.Command("go", "run", "./cmd/server", "-config", configPath)
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr

	if err := server.Start(); err != nil {
		fmt.Printf("Ошибка запуска сервера: %v\n", err)
		return
	}

	time.Sleep(3 * time.Second)

	if _, err := os.Stat(clientName); os.IsNotExist(err) {
		fmt.Println("Сборка клиента...")
		build := exec.Command("go", "build", "-o", clientName, "./cmd/authctl")
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		if err := build.Run(); err != nil {
			fmt.Printf("Ошибка сборки клиента: %v\n", err)
		}
	}

	fmt.Println("Сервер запущен")
	if runtime.GOOS == "windows" {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: .\\authctl.exe signup --help")
	} else {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: ./authctl signup --help")
	}

	server.Wait()
}
