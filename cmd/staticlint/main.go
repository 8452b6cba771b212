/*
Package main собирает статический анализатор сервиса QR-кодов.

В набор входят:
  - анализаторы golang.org/x/tools/go/analysis/passes, которые находят ошибки
    в HTTP-обработчиках, работе с ошибками, контекстом и горутинами;
  - все проверки класса SA из staticcheck.io;
  - выбранные по имени проверки simple, stylecheck и quickfix;
  - ineffassign;
  - noosexit, запрещающий os.Exit в функции main пакета main.

Анализаторы для ассемблера, cgo и unsafe в набор не входят: в сервисе их нет.

Использование:

	go install ./cmd/staticlint
	staticlint ./...
*/
package main

import "golang.org/x/tools/go/analysis/multichecker"

func main() {
	multichecker.Main(collectAnalyzers()...)
}
