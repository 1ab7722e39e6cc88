package logging

import (
	"fmt"
	"sort"
	"sync"
)

// Компоненты с собственными логгерами
const (
	ComponentWorldgen   = "worldgen"
	ComponentVisibility = "visibility"
	ComponentShadow     = "shadow"
	ComponentViewer     = "viewer"
)

// LoggerManager выдаёт по одному логгеру на компонент.
// Новые логгеры получают уровни менеджера; файловый вывод включается EnableFileOutput.
type LoggerManager struct {
	mu           sync.Mutex
	loggers      map[string]*Logger
	fileOutput   bool
	consoleLevel LogLevel
	fileLevel    LogLevel
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = NewLoggerManager()
	})
	return globalManager
}

// NewLoggerManager создаёт менеджер с консольными логгерами уровня INFO
func NewLoggerManager() *LoggerManager {
	return &LoggerManager{
		loggers:      make(map[string]*Logger),
		consoleLevel: INFO,
		fileLevel:    TRACE,
	}
}

// EnableFileOutput включает запись в файлы для логгеров, созданных после вызова
func (lm *LoggerManager) EnableFileOutput(enabled bool) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	lm.fileOutput = enabled
}

// SetDefaultLevels задаёт уровни для всех уже выданных и будущих логгеров
func (lm *LoggerManager) SetDefaultLevels(console, file LogLevel) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	lm.consoleLevel = console
	lm.fileLevel = file
	for _, l := range lm.loggers {
		l.SetLevels(console, file)
	}
}

// GetLogger возвращает логгер компонента, создавая его при первом обращении
func (lm *LoggerManager) GetLogger(component string) (*Logger, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if l, ok := lm.loggers[component]; ok {
		return l, nil
	}

	l := NewConsoleLogger(component)
	if lm.fileOutput {
		fl, err := NewLogger(component)
		if err != nil {
			return nil, fmt.Errorf("logger for %s: %w", component, err)
		}
		l = fl
	}
	l.SetLevels(lm.consoleLevel, lm.fileLevel)

	lm.loggers[component] = l
	return l, nil
}

// MustGetLogger как GetLogger, но при ошибке файлового вывода отдаёт консольный логгер
func (lm *LoggerManager) MustGetLogger(component string) *Logger {
	l, err := lm.GetLogger(component)
	if err != nil {
		defaultLogger.Warn("⚠️ %v, используется консоль", err)
		return NewConsoleLogger(component)
	}
	return l
}

// CloseAll закрывает файлы всех логгеров и забывает их
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var lastErr error
	for component, l := range lm.loggers {
		if err := l.Close(); err != nil {
			lastErr = fmt.Errorf("close logger for %s: %w", component, err)
		}
	}
	lm.loggers = make(map[string]*Logger)
	return lastErr
}

// ListComponents возвращает отсортированный список компонентов
func (lm *LoggerManager) ListComponents() []string {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	components := make([]string, 0, len(lm.loggers))
	for component := range lm.loggers {
		components = append(components, component)
	}
	sort.Strings(components)
	return components
}

// SetLogLevel меняет уровни одного компонента
func (lm *LoggerManager) SetLogLevel(component string, consoleLevel, fileLevel LogLevel) error {
	lm.mu.Lock()
	l, ok := lm.loggers[component]
	lm.mu.Unlock()

	if !ok {
		return fmt.Errorf("logger for component %s not found", component)
	}
	l.SetLevels(consoleLevel, fileLevel)
	return nil
}

func GetComponentLogger(component string) *Logger {
	return GetLoggerManager().MustGetLogger(component)
}

func GetWorldgenLogger() *Logger   { return GetComponentLogger(ComponentWorldgen) }
func GetVisibilityLogger() *Logger { return GetComponentLogger(ComponentVisibility) }
func GetShadowLogger() *Logger     { return GetComponentLogger(ComponentShadow) }
func GetViewerLogger() *Logger     { return GetComponentLogger(ComponentViewer) }
