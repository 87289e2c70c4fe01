package server

// clientScript keeps the page in sync with the server. It swaps the root's
// content on every websocket frame and forwards events from elements that
// carry data-vid and list the event in data-events.
const clientScript = `(function () {
  var root = document.getElementById("viridian-root");
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (e) {
    var msg = JSON.parse(e.data);
    if (msg.type === "body") { root.innerHTML = msg.html; }
  };
  ["click", "input", "change", "submit", "keydown", "keyup", "focus", "blur"].forEach(function (type) {
    document.addEventListener(type, function (e) {
      var el = e.target.closest ? e.target.closest("[data-vid]") : null;
      if (!el || (" " + el.getAttribute("data-events") + " ").indexOf(" " + type + " ") < 0) { return; }
      if (type === "submit") { e.preventDefault(); }
      var body = new URLSearchParams();
      if (e.target.value !== undefined) { body.set("value", e.target.value); }
      fetch("/events/" + el.getAttribute("data-vid") + "/" + type, { method: "POST", body: body });
    }, true);
  });
})();`
